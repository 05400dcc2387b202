package middlewares

import (
	"email-attestation-service/internal/pkg/exceptions"
	"email-attestation-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

const rateLimitGroupIP = "ip"

// IPRateLimiter caps every client IP at App.MaxRequests per second.
func (m *Middlewares) IPRateLimiter() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(rateLimitGroupIP))
		}),
	)
}
