package config

import (
	"email-attestation-service/internal/pkg/constvars"
	"email-attestation-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			Enabled:  utils.GetEnvBool("REDIS_ENABLED", false),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", ""),
			Port:        utils.GetEnvInt("SMTP_PORT", 0),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", ""),
			Secure:      utils.GetEnvBool("SMTP_SECURE", false),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", ""),
			Password: utils.GetEnvString("MINIO_PASSWORD", ""),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
			Enabled:  utils.GetEnvBool("MINIO_ENABLED", false),
		},
	}
}

// NewInternalConfig fails when VERIFIER_CUSTOM_REQUEST_PARAMS is set but is
// not a JSON object.
func NewInternalConfig() (*InternalConfig, error) {
	customRequestParams, err := utils.GetEnvJSONMap("VERIFIER_CUSTOM_REQUEST_PARAMS")
	if err != nil {
		return nil, err
	}

	return &InternalConfig{
		App: App{
			Env:                      utils.GetEnvString("APP_ENV", constvars.APP_ENV_DEVELOPMENT),
			Port:                     utils.GetEnvString("APP_PORT", ":8080"),
			Version:                  utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:           utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:              utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeoutInSeconds: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds:  utils.GetEnvInt("APP_REQUEST_TIMEOUT", 10),
			VerifyBurst:              utils.GetEnvInt("APP_VERIFY_BURST", 5),
			VerifyBlockTimeInSeconds: utils.GetEnvInt("APP_VERIFY_BLOCK_TIME", 60),
		},
		Verifier: AppVerifier{
			CallbackURL:         utils.GetEnvString("VERIFIER_CALLBACK_URL", ""),
			ConfirmSubject:      utils.GetEnvString("VERIFIER_CONFIRM_SUBJECT", constvars.EmailConfirmSubjectMessage),
			ReceiveSubject:      utils.GetEnvString("VERIFIER_RECEIVE_SUBJECT", constvars.EmailReceiveSubjectMessage),
			DispatchMode:        utils.GetEnvString("MAILER_DISPATCH_MODE", constvars.DispatchModeNone),
			CustomRequestParams: customRequestParams,
			CodeSize:            utils.GetEnvInt("VERIFIER_CODE_SIZE", constvars.CodeImageDefaultSize),
		},
		Credentials: AppCredentials{
			Issuer:              utils.GetEnvString("CREDENTIALS_ISSUER", ""),
			JWTAlg:              utils.GetEnvString("CREDENTIALS_JWT_ALG", "ES256"),
			SigningKey:          utils.GetEnvString("CREDENTIALS_SIGNING_KEY", ""),
			RequestTTLInMinutes: utils.GetEnvInt("CREDENTIALS_REQUEST_TTL_IN_MINUTES", 10),
		},
		RateLimit: AppRateLimit{
			EmailRequestQuota:     utils.GetEnvInt("RATE_LIMIT_EMAIL_REQUEST_QUOTA", 5),
			EmailRequestWindowSec: utils.GetEnvInt("RATE_LIMIT_EMAIL_REQUEST_WINDOW_SEC", 600),
		},
		RabbitMQ: AppRabbitMQ{
			MailerQueue: utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "mailer"),
		},
		Minio: AppMinio{
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "email-requests"),
		},
	}, nil
}
