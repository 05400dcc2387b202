package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"url":      "must be a valid URL",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min": true,
	"max": true,
}

const (
	// Client
	ErrClientCannotProcessRequest          = "cannot process your request"
	ErrClientSomethingWrongWithApplication = "something wrong with the application, please try again later"
	ErrClientServerLongRespond             = "server took too long to respond"
	ErrClientInvalidEmailFormat            = "invalid email format"
	ErrClientTooManyRequests               = "too many confirmation requests for this address, please try again later"

	// Dev
	ErrDevMissingParameter            = "Missing parameter '%s'"
	ErrDevInvalidEmailFormat          = "invalid email format"
	ErrDevValidationFailed            = "validation failed"
	ErrDevInvalidInput                = "invalid input"
	ErrDevCannotParseJSON             = "cannot parse JSON"
	ErrDevCannotMarshalJSON           = "cannot marshal JSON"
	ErrDevServerDeadlineExceeded      = "server deadline exceeded"
	ErrDevServerProcess               = "server process failed"
	ErrDevEncodeCodeImage             = "failed to encode code image as %s"
	ErrDevSMTPSendEmail               = "failed to send email via SMTP client hostname %s"
	ErrDevRabbitMQPublishMessage      = "failed to publish message to queue %s"
	ErrDevMinioFailedToCreateObject   = "failed to create object in bucket %s"
	ErrDevRedisIncrementValue         = "failed to increment value in redis"
	ErrDevRateLimitExceeded           = "rate limit exceeded for group %s"
	ErrDevCredentialSigningKeyMissing = "credential signing key is empty"
	ErrDevCredentialSigningKeyDecode  = "failed to decode PEM for credential signing key"
	ErrDevCredentialUnsupportedAlg    = "unsupported credential signing algorithm: %s"
	ErrDevCredentialSignRequest       = "failed to sign selective disclosure request"
)
