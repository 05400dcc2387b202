package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingOperationKey          = "operation"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingRedisKey              = "redis_key"
	LoggingEmailKey              = "email"
	LoggingCallbackURLKey        = "callback_url"
	LoggingDispatchModeKey       = "dispatch_mode"
	LoggingQueueNameKey          = "queue_name"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"
	LoggingRetryAfterSecondsKey  = "retry_after_seconds"
	LoggingCodeImageSizeBytesKey = "code_image_size_bytes"
)
