package controllers

import (
	"context"
	"email-attestation-service/internal/app/config"
	"email-attestation-service/internal/app/services/shared/ratelimiter"
	"email-attestation-service/internal/app/services/verifier"
	"email-attestation-service/internal/pkg/constvars"
	"email-attestation-service/internal/pkg/dto/requests"
	"email-attestation-service/internal/pkg/dto/responses"
	"email-attestation-service/internal/pkg/exceptions"
	"email-attestation-service/internal/pkg/utils"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// RequestLimiter throttles confirmation requests per address.
type RequestLimiter interface {
	ApplyResourceLimiter(ctx context.Context, in *ratelimiter.ApplyResourceLimiterInput) (*ratelimiter.ApplyResourceLimiterOutput, error)
}

type EmailController struct {
	Log            *zap.Logger
	Verifier       verifier.Verifier
	Limiter        RequestLimiter
	InternalConfig *config.InternalConfig
}

// NewEmailController wires the controller. limiter may be nil, which
// disables the per-address throttle.
func NewEmailController(logger *zap.Logger, emailVerifier verifier.Verifier, limiter RequestLimiter, internalConfig *config.InternalConfig) *EmailController {
	return &EmailController{
		Log:            logger,
		Verifier:       emailVerifier,
		Limiter:        limiter,
		InternalConfig: internalConfig,
	}
}

func (ctrl *EmailController) CreateRequest(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.CreateEmailRequest)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	// Sanitize request
	utils.SanitizeCreateEmailRequest(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := ctrl.withTimeout(r.Context())
	defer cancel()

	if ctrl.Limiter != nil {
		limit, err := ctrl.Limiter.ApplyResourceLimiter(ctx, &ratelimiter.ApplyResourceLimiterInput{
			ResourceName:      request.Email,
			LimiterGroupName:  constvars.RateLimitGroupEmailRequest,
			WindowDurationSec: ctrl.InternalConfig.RateLimit.EmailRequestWindowSec,
			MaxQuota:          ctrl.InternalConfig.RateLimit.EmailRequestQuota,
		})
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, err)
			return
		}
		if !limit.Allowed {
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(limit.RetryAfterSecs))
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTooManyRequests(constvars.RateLimitGroupEmailRequest))
			return
		}
	}

	// Send it to be processed by the verifier
	requestToken, err := ctrl.Verifier.ReceiveEmail(ctx, request.Email, request.CallbackURL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Send response
	response := &responses.CreateEmailRequest{RequestToken: requestToken}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.EmailRequestCreatedSuccessMessage, response)
}

func (ctrl *EmailController) Verify(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.VerifyEmailRequest)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	// Sanitize request
	utils.SanitizeVerifyEmailRequest(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	settings := verifier.DefaultVerifySettings()
	if request.SendPush != nil {
		settings.SendPush = *request.SendPush
	}
	if request.SendEmail != nil {
		settings.SendEmail = *request.SendEmail
	}

	ctx, cancel := ctrl.withTimeout(r.Context())
	defer cancel()

	confirmation, err := ctrl.Verifier.Verify(ctx, request.AccessToken, &settings)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response := &responses.VerifyEmail{
		AccessToken: confirmation.AccessToken,
		SendPush:    confirmation.SendPush,
		SendEmail:   confirmation.SendEmail,
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.EmailVerifySuccessMessage, response)
}

func (ctrl *EmailController) withTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(parent, timeout)
}
