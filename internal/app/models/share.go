package models

import "time"

// SharedReport is an immutable analysis snapshot published behind a signed
// link. Stored in Redis under a TTL; once the TTL lapses the link is gone.
type SharedReport struct {
	ID           string      `json:"id"`
	Tenant       string      `json:"tenant"`
	DatasetID    string      `json:"datasetId"`
	PlanID       string      `json:"planId,omitempty"`
	Snapshot     interface{} `json:"snapshot"`
	PasscodeHash string      `json:"passcodeHash,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	ExpiresAt    time.Time   `json:"expiresAt"`
}
