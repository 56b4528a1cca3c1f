package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingSessionDataKey    = "session_data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"
	LoggingErrorKey          = "error"
	LoggingUserIDKey         = "user_id"
	LoggingOrgIDKey          = "org_id"
	LoggingRequestRefKey     = "service_request_id"
	LoggingPaymentIDKey      = "payment_id"
	LoggingTicketIDKey       = "ticket_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingDocumentIDKey     = "document_id"
	LoggingStatusKey         = "status"
	LoggingCountKey          = "count"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingQueueNameKey      = "queue_name"
	LoggingEventTypeKey      = "event_type"
	LoggingWorkerKey         = "worker"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingRoleKey           = "role"
	LoggingErrorTypeKey      = "error_type"
)
