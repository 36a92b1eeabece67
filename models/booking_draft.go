package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingDraft persists an in-progress booking wizard for one session.
type BookingDraft struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	SessionID uuid.UUID `gorm:"type:uuid;index;not null"`
	SalonID   string    `gorm:"not null"`
	Step      int       `gorm:"not null;default:1"`
	ServiceID string
	StaffID   string
	Date      string                               `gorm:"type:varchar(10)"`
	Time      string                               `gorm:"type:varchar(40)"`
	Notes     string                               `gorm:"type:text"`
	Slots     datatypes.JSONSlice[AvailabilitySlot] `gorm:"not null"`
	SlotsKey  string
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

func (d *BookingDraft) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
