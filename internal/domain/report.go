package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Analysis tri-state for a report. Terminal states never revert to pending.
const (
	AnalysisFailed   = -1
	AnalysisPending  = 0
	AnalysisComplete = 1
)

type Report struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FileName         string         `gorm:"column:file_name;not null" json:"file_name"`
	FilePath         string         `gorm:"column:file_path;not null" json:"file_path"`
	MimeType         string         `gorm:"column:mime_type;not null" json:"mime_type"`
	SizeBytes        int64          `gorm:"column:size_bytes" json:"size_bytes"`
	ExtractedData    datatypes.JSON `gorm:"column:extracted_data;type:jsonb" json:"extracted_data,omitempty"`
	AnalysisComplete int            `gorm:"column:analysis_complete;not null;default:0;index" json:"analysis_complete"`
	LastError        string         `gorm:"column:last_error" json:"last_error,omitempty"`
	UploadedAt       time.Time      `gorm:"column:uploaded_at;not null;default:now();index" json:"uploaded_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Report) TableName() string { return "report" }

// StatusLabel maps the tri-state flag onto the wire vocabulary used by the
// status polling endpoint.
func (r *Report) StatusLabel() string {
	switch r.AnalysisComplete {
	case AnalysisComplete:
		return "complete"
	case AnalysisFailed:
		return "failed"
	default:
		return "processing"
	}
}
