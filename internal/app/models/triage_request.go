package models

import (
	"strings"
	"time"
)

// RequestTypeMedical marks the requests that participate in urgency and
// capacity analysis; admin requests are counted only in volume summaries.
const RequestTypeMedical = "Medical"

// SlotTypeUnset is the placeholder exports use when no slot type was assigned.
const SlotTypeUnset = "-"

// TriageRequest is one normalized row of a clinic triage export. Records are
// immutable once ingested.
type TriageRequest struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	DatasetID string `json:"datasetId" bson:"datasetId"`
	Tenant    string `json:"tenant" bson:"tenant"`

	RequestDate *time.Time `json:"requestDate" bson:"requestDate"`
	RequestDay  string     `json:"requestDay" bson:"requestDay"`
	RequestHour *int       `json:"requestHour" bson:"requestHour"`

	RequestType string  `json:"requestType" bson:"requestType"`
	Pathway     string  `json:"pathway" bson:"pathway"`
	Urgency     Urgency `json:"urgency,omitempty" bson:"urgency,omitempty"`
	Automated   bool    `json:"automated" bson:"automated"`
	SlotType    string  `json:"slotType" bson:"slotType"`

	AppointmentStatus   string   `json:"appointmentStatus" bson:"appointmentStatus"`
	PatientAge          int      `json:"patientAge" bson:"patientAge"`
	IsAdult             bool     `json:"isAdult" bson:"isAdult"`
	TimeToProcessedMins *float64 `json:"timeToProcessedMins" bson:"timeToProcessedMins"`
}

func (r TriageRequest) IsMedical() bool {
	return r.RequestType == RequestTypeMedical
}

func (r TriageRequest) HasUrgency() bool {
	return r.Urgency.Valid()
}

// HasSlotType reports whether a slot category was actually assigned.
func (r TriageRequest) HasSlotType() bool {
	trimmed := strings.TrimSpace(r.SlotType)
	return trimmed != "" && trimmed != SlotTypeUnset
}

// Symptom returns the human-readable tail of the dot-delimited pathway code,
// e.g. "Headache" for "Triage.Headache".
func (r TriageRequest) Symptom() string {
	if r.Pathway == "" {
		return ""
	}
	segments := strings.Split(r.Pathway, ".")
	return segments[len(segments)-1]
}
