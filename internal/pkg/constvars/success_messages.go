package constvars

const (
	// Generic messages
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Dataset messages
	DatasetUploadedSuccess = "dataset uploaded and queued for processing"
	DatasetFetchedSuccess  = "dataset fetched and queued for processing"
	DatasetListSuccess     = "datasets retrieved successfully"
	DatasetGetSuccess      = "dataset retrieved successfully"
	DatasetDeletedSuccess  = "dataset deleted successfully"

	// Capacity plan messages
	PlanCreatedSuccess = "capacity plan created successfully"
	PlanUpdatedSuccess = "capacity plan updated successfully"
	PlanDeletedSuccess = "capacity plan deleted successfully"
	PlanListSuccess    = "capacity plans retrieved successfully"
	PlanGetSuccess     = "capacity plan retrieved successfully"

	// Analysis messages
	AnalysisSuccess = "analysis computed successfully"

	// Share messages
	ShareCreatedSuccess  = "share link created successfully"
	ShareResolvedSuccess = "shared report retrieved successfully"
)
