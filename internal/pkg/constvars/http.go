package constvars

const (
	MIMEApplicationJSON = "application/json"
	MIMEImagePNG        = "image/png"
)

const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusBadRequest          = 400
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusGatewayTimeout      = 504
)

const (
	HeaderContentType = "Content-Type"
	HeaderRetryAfter  = "Retry-After"
	HeaderXRequestID  = "X-Request-ID"
)
