package config

type InternalConfig struct {
	App         App            `mapstructure:"app"`
	Verifier    AppVerifier    `mapstructure:"verifier"`
	Credentials AppCredentials `mapstructure:"credentials"`
	RateLimit   AppRateLimit   `mapstructure:"rate_limit"`
	RabbitMQ    AppRabbitMQ    `mapstructure:"rabbitmq"`
	Minio       AppMinio       `mapstructure:"minio"`
}

type App struct {
	Env                      string `mapstructure:"env"`
	Port                     string `mapstructure:"port"`
	Version                  string `mapstructure:"version"`
	EndpointPrefix           string `mapstructure:"endpoint_prefix"`
	MaxRequests              int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds int    `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds  int    `mapstructure:"request_timeout_in_seconds"`

	// VerifyBurst is the number of verify calls an IP may make per VerifyBlockTimeInSeconds before being blocked
	VerifyBurst              int `mapstructure:"verify_burst"`
	VerifyBlockTimeInSeconds int `mapstructure:"verify_block_time_in_seconds"`
}

type AppVerifier struct {
	// CallbackURL is the endpoint the mobile client calls after scanning the code
	CallbackURL    string `mapstructure:"callback_url"`
	ConfirmSubject string `mapstructure:"confirm_subject"`
	ReceiveSubject string `mapstructure:"receive_subject"`
	// DispatchMode is one of none|smtp|queue
	DispatchMode string `mapstructure:"dispatch_mode"`
	// CustomRequestParams is decoded from a JSON object and forwarded into every credential request
	CustomRequestParams map[string]interface{} `mapstructure:"custom_request_params"`
	CodeSize            int                    `mapstructure:"code_size"`
}

type AppCredentials struct {
	Issuer string `mapstructure:"issuer"`
	// JWTAlg selects the signing algorithm (ES256|RS256)
	JWTAlg string `mapstructure:"jwt_alg"`
	// SigningKey is the private key PEM used to sign selective disclosure requests
	SigningKey          string `mapstructure:"signing_key"`
	RequestTTLInMinutes int    `mapstructure:"request_ttl_in_minutes"`
}

// AppRateLimit bounds confirmation requests per email address.
type AppRateLimit struct {
	EmailRequestQuota     int `mapstructure:"email_request_quota"`
	EmailRequestWindowSec int `mapstructure:"email_request_window_sec"`
}

type AppRabbitMQ struct {
	MailerQueue string `mapstructure:"mailer_queue"`
}

type AppMinio struct {
	BucketName string `mapstructure:"bucket_name"`
}
