package routers

import (
	"email-attestation-service/internal/app/delivery/http/controllers"
	"email-attestation-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachEmailRoutes(router chi.Router, verifyLimiter *middlewares.RateLimiter, emailController *controllers.EmailController) {
	router.Post("/requests", emailController.CreateRequest)
	router.With(verifyLimiter.Limit).Post("/verify", emailController.Verify)
}
