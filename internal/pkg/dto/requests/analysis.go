package requests

type BuildAnalysis struct {
	DatasetID             string `validate:"required"`
	PlanID                string
	AcceptWeekendRequests bool
	Tenant                string
}
