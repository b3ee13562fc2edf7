package models

import (
	"time"

	"slotplan-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson"
)

// Dataset tracks one uploaded or fetched triage export through the ingestion
// pipeline. Status moves uploaded -> queued -> processing -> ready|failed.
type Dataset struct {
	ID            string     `json:"id" bson:"_id,omitempty"`
	Tenant        string     `json:"tenant" bson:"tenant"`
	Name          string     `json:"name" bson:"name"`
	SourceFile    string     `json:"sourceFile" bson:"sourceFile"`
	SourceURL     string     `json:"sourceUrl,omitempty" bson:"sourceUrl,omitempty"`
	ObjectKey     string     `json:"-" bson:"objectKey"`
	Status        string     `json:"status" bson:"status"`
	FailureReason string     `json:"failureReason,omitempty" bson:"failureReason,omitempty"`
	RequestCount  int        `json:"requestCount" bson:"requestCount"`
	ProcessedAt   *time.Time `json:"processedAt,omitempty" bson:"processedAt,omitempty"`
	TimeModel     `bson:",inline"`
}

// ConvertToBsonM builds the update document, leaving _id out so the driver
// never touches the immutable field.
func (d *Dataset) ConvertToBsonM() bson.M {
	return bson.M{
		"tenant":        d.Tenant,
		"name":          d.Name,
		"sourceFile":    d.SourceFile,
		"sourceUrl":     d.SourceURL,
		"objectKey":     d.ObjectKey,
		"status":        d.Status,
		"failureReason": d.FailureReason,
		"requestCount":  d.RequestCount,
		"processedAt":   d.ProcessedAt,
		"createdAt":     d.CreatedAt,
		"updatedAt":     d.UpdatedAt,
	}
}

func (d Dataset) ConvertIntoResponse() responses.Dataset {
	return responses.Dataset{
		DatasetID:     d.ID,
		Tenant:        d.Tenant,
		Name:          d.Name,
		SourceFile:    d.SourceFile,
		SourceURL:     d.SourceURL,
		Status:        d.Status,
		FailureReason: d.FailureReason,
		RequestCount:  d.RequestCount,
		UploadedAt:    d.CreatedAt,
		ProcessedAt:   d.ProcessedAt,
	}
}
