package exceptions

import (
	"errors"
	"testing"

	"email-attestation-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	t.Run("missing parameter names the field", func(t *testing.T) {
		err := ErrMissingParameter("callbackUrl")
		assert.Equal(t, "Missing parameter 'callbackUrl'", err.Error())
		assert.True(t, errors.Is(err, ErrMissing))
		assert.Equal(t, constvars.StatusBadRequest, err.StatusCode)
	})

	t.Run("invalid email format", func(t *testing.T) {
		err := ErrInvalidEmailFormat()
		assert.Equal(t, "invalid email format", err.Error())
		assert.True(t, errors.Is(err, ErrEmailFormat))
		assert.False(t, errors.Is(err, ErrMissing))
	})

	t.Run("too many requests", func(t *testing.T) {
		err := ErrTooManyRequests(constvars.RateLimitGroupEmailRequest)
		assert.True(t, errors.Is(err, ErrRateLimited))
		assert.Equal(t, constvars.StatusTooManyRequests, err.StatusCode)
		assert.Contains(t, err.Error(), constvars.RateLimitGroupEmailRequest)
	})
}

func TestBuildNewCustomError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := ErrSMTPSendEmail(cause, "smtp.example.com")

	assert.Equal(t, "failed to send email via SMTP client hostname smtp.example.com: dial tcp: connection refused", err.Error())
	assert.Same(t, cause, errors.Unwrap(err))
	assert.Len(t, err.Locations, 1)
	assert.Contains(t, err.Locations[0].FunctionName, "TestBuildNewCustomError")
}
