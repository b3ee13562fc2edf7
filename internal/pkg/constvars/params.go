package constvars

const (
	URLParamDatasetID  = "dataset_id"
	URLParamPlanID     = "plan_id"
	URLParamShareToken = "share_token"
)

const (
	URLQueryParamPlanID         = "plan_id"
	URLQueryParamAcceptWeekend  = "accept_weekend_requests"
	URLQueryParamPage           = "page"
	URLQueryParamPageSize       = "page_size"
	URLQueryParamSharePasscode  = "passcode"
	MultipartFormFileField      = "file"
	MultipartFormDatasetName    = "name"
	DatasetUploadMaxMemoryBytes = 10 << 20
)
