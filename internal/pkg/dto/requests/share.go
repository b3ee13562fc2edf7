package requests

type CreateShare struct {
	DatasetID             string `json:"dataset_id" validate:"required"`
	PlanID                string `json:"plan_id,omitempty"`
	AcceptWeekendRequests bool   `json:"accept_weekend_requests"`
	Passcode              string `json:"passcode,omitempty" validate:"omitempty,min=4,max=64"`
	TTLHours              int    `json:"ttl_hours,omitempty" validate:"omitempty,min=1,max=720"`
	Tenant                string
}

type ResolveShare struct {
	Token    string `validate:"required"`
	Passcode string
}
