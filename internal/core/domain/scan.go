package domain

import "time"

type ScanStatus string

const (
	ScanUploaded   ScanStatus = "uploaded"
	ScanProcessing ScanStatus = "processing"
	ScanReady      ScanStatus = "ready"
	ScanFailed     ScanStatus = "failed"
)

// Scan is one asynchronously processed crop photo: uploaded over HTTP, queued,
// classified by the worker, and readable back with its prediction.
type Scan struct {
	ID                  string     `json:"id"`
	Filename            string     `json:"filename"`
	MimeType            string     `json:"mime_type"`
	StoragePath         string     `json:"storage_path"`
	Status              ScanStatus `json:"status"`
	DiseaseName         string     `json:"disease_name,omitempty"`
	ConfidenceScore     float64    `json:"confidence_score,omitempty"`
	TreatmentSuggestion string     `json:"treatment_suggestion,omitempty"`
	Error               string     `json:"error,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
