package responses

import "time"

type ShareLink struct {
	ShareID           string    `json:"share_id"`
	Token             string    `json:"token"`
	PasscodeProtected bool      `json:"passcode_protected"`
	ExpiresAt         time.Time `json:"expires_at"`
}

type SharedReport struct {
	ShareID   string      `json:"share_id"`
	DatasetID string      `json:"dataset_id"`
	PlanID    string      `json:"plan_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
	Report    interface{} `json:"report"`
}
