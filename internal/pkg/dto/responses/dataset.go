package responses

import "time"

type Dataset struct {
	DatasetID     string     `json:"dataset_id"`
	Tenant        string     `json:"tenant"`
	Name          string     `json:"name"`
	SourceFile    string     `json:"source_file,omitempty"`
	SourceURL     string     `json:"source_url,omitempty"`
	Status        string     `json:"status"`
	FailureReason string     `json:"failure_reason,omitempty"`
	RequestCount  int        `json:"request_count"`
	UploadedAt    time.Time  `json:"uploaded_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}
