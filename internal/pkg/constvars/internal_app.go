package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_RAW_BODY                 ContextKey = "raw_body"
)

const (
	REQUEST_ID_PREFIX = "CNSLT_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	AppDefaultPageSize     = 20
	AppMaxPageSize         = 100
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	RoleCitizen    = "citizen"
	RoleAgent      = "agent"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

const (
	MongoCollectionProfiles       = "profiles"
	MongoCollectionOrganizations  = "orgs"
	MongoCollectionOrgServices    = "org_services"
	MongoCollectionRequests       = "service_requests"
	MongoCollectionAppointments   = "appointments"
	MongoCollectionAgentSchedules = "agent_schedules"
	MongoCollectionDocuments      = "documents"
)

const (
	RequestReferencePrefix = "REQ"
	TicketReferencePrefix  = "TCK"
)

const (
	RedisKeyAppointmentLockFormat = "lock:appointment:%s:%s:%s"
	RedisKeyReminderWorkerLock    = "lock:worker:appointment_reminder"
	RedisKeyPlaceDetailsFormat    = "cache:places:details:%s:%s"
	RedisPlaceDetailsTTLInHours   = 24
)

const (
	QuotaGroupTicketCreation     = "ticket_creation"
	QuotaTicketCreationWindowSec = 3600
	QuotaTicketCreationMax       = 10

	QuotaGroupOutboundCall     = "outbound_call"
	QuotaOutboundCallWindowSec = 60
	QuotaOutboundCallMax       = 10
)
