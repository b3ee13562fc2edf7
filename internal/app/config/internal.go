package config

type InternalConfig struct {
	App      App         `mapstructure:"app"`
	Ingest   AppIngest   `mapstructure:"ingest"`
	Analysis AppAnalysis `mapstructure:"analysis"`
	Share    AppShare    `mapstructure:"share"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Address                    string `mapstructure:"address"`
	Timezone                   string `mapstructure:"timezone"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds  int    `mapstructure:"max_time_requests_per_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
	SuperadminAPIKey           string `mapstructure:"superadmin_api_key"`
	SuperadminAPIKeyRateLimit  int    `mapstructure:"superadmin_api_key_rate_limit"`
}

type AppIngest struct {
	// WorkerIntervalSeconds is the tick interval of the ingestion worker loop.
	WorkerIntervalSeconds int `mapstructure:"worker_interval_seconds"`
	// WorkerBatchSize caps how many queued jobs the worker drains per tick.
	WorkerBatchSize int `mapstructure:"worker_batch_size"`
	// RetryThreshold is the attempt count after which a job goes to the DLQ.
	RetryThreshold int `mapstructure:"retry_threshold"`
	// ExportMaxUploadSizeInMB caps uploaded and fetched export files.
	ExportMaxUploadSizeInMB int64 `mapstructure:"export_max_upload_size_in_mb"`
}

type AppAnalysis struct {
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes"`
}

type AppShare struct {
	TokenSecret           string `mapstructure:"token_secret"`
	DefaultTTLHours       int    `mapstructure:"default_ttl_hours"`
	RateLimitWindowSec    int    `mapstructure:"rate_limit_window_sec"`
	RateLimitMaxPerWindow int    `mapstructure:"rate_limit_max_per_window"`
}
