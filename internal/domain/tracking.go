package domain

import (
	"time"

	"github.com/google/uuid"
)

// Daily-metric logs. Flat records with no cross-entity invariants.

type PeriodCycle struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StartDate time.Time  `gorm:"column:start_date;not null;index" json:"start_date"`
	EndDate   *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	FlowLevel string     `gorm:"column:flow_level" json:"flow_level,omitempty"`
	Symptoms  string     `gorm:"column:symptoms;type:text" json:"symptoms,omitempty"`
	Notes     string     `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (PeriodCycle) TableName() string { return "period_cycle" }

type WaterIntake struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	AmountML  int       `gorm:"column:amount_ml;not null" json:"amount_ml"`
	LoggedAt  time.Time `gorm:"column:logged_at;not null;default:now();index" json:"logged_at"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (WaterIntake) TableName() string { return "water_intake" }

type StepsEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Steps     int       `gorm:"column:steps;not null" json:"steps"`
	LoggedAt  time.Time `gorm:"column:logged_at;not null;default:now();index" json:"logged_at"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (StepsEntry) TableName() string { return "steps_entry" }
