package domain

import (
	"time"

	"github.com/google/uuid"
)

type Insight struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReportID  *uuid.UUID `gorm:"type:uuid;index" json:"report_id,omitempty"`
	Category  string     `gorm:"column:category;not null" json:"category"`
	Title     string     `gorm:"column:title;not null" json:"title"`
	Content   string     `gorm:"column:content;type:text;not null" json:"content"`
	Severity  string     `gorm:"column:severity" json:"severity,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:now();index" json:"created_at"`
}

func (Insight) TableName() string { return "insight" }
