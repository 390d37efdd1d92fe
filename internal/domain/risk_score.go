package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
)

type RiskScore struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReportID       *uuid.UUID `gorm:"type:uuid;index" json:"report_id,omitempty"`
	AssessmentID   *uuid.UUID `gorm:"type:uuid;index" json:"assessment_id,omitempty"`
	Score          int        `gorm:"column:score;not null" json:"score"`
	RiskLevel      string     `gorm:"column:risk_level;not null" json:"risk_level"`
	Interpretation string     `gorm:"column:interpretation;type:text" json:"interpretation,omitempty"`
	CalculatedAt   time.Time  `gorm:"column:calculated_at;not null;default:now();index" json:"calculated_at"`
}

func (RiskScore) TableName() string { return "risk_score" }
