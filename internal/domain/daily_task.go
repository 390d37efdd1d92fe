package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyTask rows accumulate across assessment runs; the dashboard always
// fetches the full list. Completed is an int flag toggled by the user.
type DailyTask struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReportID    *uuid.UUID `gorm:"type:uuid;index" json:"report_id,omitempty"`
	TaskType    string     `gorm:"column:task_type;not null" json:"task_type"`
	Description string     `gorm:"column:description;type:text;not null" json:"description"`
	Target      string     `gorm:"column:target" json:"target,omitempty"`
	Completed   int        `gorm:"column:completed;not null;default:0" json:"completed"`
	CreatedAt   time.Time  `gorm:"not null;default:now();index" json:"created_at"`
}

func (DailyTask) TableName() string { return "daily_task" }
