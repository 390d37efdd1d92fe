package domain

import (
	"time"

	"github.com/google/uuid"
)

type EmergencyContact struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Phone        string    `gorm:"column:phone;not null" json:"phone"`
	Relationship string    `gorm:"column:relationship" json:"relationship,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (EmergencyContact) TableName() string { return "emergency_contact" }

// SOS alert delivery states. Dispatch is best-effort; an alert with no
// reachable contacts stays in "triggered".
const (
	SosTriggered = "triggered"
	SosNotified  = "notified"
	SosResolved  = "resolved"
)

type SosAlert struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Status           string    `gorm:"column:status;not null;default:'triggered'" json:"status"`
	Message          string    `gorm:"column:message;type:text" json:"message,omitempty"`
	Latitude         string    `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude        string    `gorm:"column:longitude" json:"longitude,omitempty"`
	ContactsNotified int       `gorm:"column:contacts_notified;not null;default:0" json:"contacts_notified"`
	TriggeredAt      time.Time `gorm:"column:triggered_at;not null;default:now();index" json:"triggered_at"`
}

func (SosAlert) TableName() string { return "sos_alert" }
