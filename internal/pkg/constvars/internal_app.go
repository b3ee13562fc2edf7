package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_TENANT_KEY               ContextKey = "tenant"
)

const (
	REQUEST_ID_PREFIX = "SLTPLN_SVC_"
)

const (
	DefaultTenant = "default"
)

const (
	MongoCollectionDatasets       = "datasets"
	MongoCollectionTriageRequests = "triage_requests"
	MongoCollectionCapacityPlans  = "capacity_plans"
)

const (
	RedisKeyAnalysisPrefix  = "analysis"
	RedisKeySharePrefix     = "share"
	RedisKeyLockIngestRun   = "lock:ingest_run"
	RedisKeyShareRatePrefix = "ratelimit:share"
)

const (
	IngestQueueName     = "slotplan.ingest"
	IngestDeadQueueName = "slotplan.ingest.dead"
)

const (
	DatasetStatusUploaded   = "uploaded"
	DatasetStatusQueued     = "queued"
	DatasetStatusProcessing = "processing"
	DatasetStatusReady      = "ready"
	DatasetStatusFailed     = "failed"
)
