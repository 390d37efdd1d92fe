package domain

import (
	"time"

	"github.com/google/uuid"
)

// Parameter status labels as the extraction model reports them.
const (
	ParameterNormal = "Normal"
	ParameterHigh   = "High"
	ParameterLow    = "Low"
)

// Parameter is one named lab value extracted from a report. Rows are created
// only by the extraction job and never mutated afterwards.
type Parameter struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReportID       uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	Report         *Report   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReportID;references:ID" json:"report,omitempty"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Value          string    `gorm:"column:value;not null" json:"value"`
	Unit           string    `gorm:"column:unit" json:"unit,omitempty"`
	ReferenceRange string    `gorm:"column:reference_range" json:"reference_range,omitempty"`
	Status         string    `gorm:"column:status" json:"status,omitempty"`
	ExtractedAt    time.Time `gorm:"column:extracted_at;not null;default:now()" json:"extracted_at"`
}

func (Parameter) TableName() string { return "parameter" }
