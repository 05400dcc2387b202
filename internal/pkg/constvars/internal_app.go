package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "EMLATT_SVC_"
)

const (
	APP_ENV_PRODUCTION  = "production"
	APP_ENV_DEVELOPMENT = "development"
)
