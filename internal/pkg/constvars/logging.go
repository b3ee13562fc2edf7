package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingTenantKey         = "tenant"
	LoggingDataKey           = "data"
	LoggingQueryParamsKey    = "query_params"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingResponseLengthKey = "response_length"

	LoggingDatasetIDKey = "dataset_id"
	LoggingPlanIDKey    = "plan_id"
	LoggingShareIDKey   = "share_id"
	LoggingJobIDKey     = "job_id"
	LoggingObjectKeyKey = "object_key"
	LoggingRowCountKey  = "row_count"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"

	LoggingDurationKey = "duration"
	LoggingSuccessKey  = "success"
)
