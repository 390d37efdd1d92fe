package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Assessment stores one questionnaire submission. Answers is a free-form
// question-id -> choice-or-scale-value mapping.
type Assessment struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReportID    *uuid.UUID     `gorm:"type:uuid;index" json:"report_id,omitempty"`
	Answers     datatypes.JSON `gorm:"column:answers;type:jsonb;not null" json:"answers"`
	CompletedAt time.Time      `gorm:"column:completed_at;not null;default:now();index" json:"completed_at"`
}

func (Assessment) TableName() string { return "assessment" }
