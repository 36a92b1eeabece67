package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultReminderMessage = "Hi [CustomerName], this is a reminder of your [ServiceName] appointment at [SalonName] on [Date] at [Time]."

// ReminderTemplate is the per-salon text used for appointment reminders.
type ReminderTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID   string    `gorm:"uniqueIndex;not null"`
	Message   string    `gorm:"type:text;not null"`
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *ReminderTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

type ReminderLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID      string    `gorm:"index;not null" json:"salonId"`
	BookingID    string    `gorm:"uniqueIndex;not null" json:"bookingId"`
	Phone        string    `gorm:"type:varchar(32)" json:"phone"`
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // pending, sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage,omitempty"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms
	SentAt       time.Time `json:"sentAt"`
	CreatedAt    time.Time `json:"-"`
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// AllModels lists the tables the dashboard owns locally.
func AllModels() []interface{} {
	return []interface{}{
		&Session{},
		&BookingDraft{},
		&ProductStock{},
		&ReminderTemplate{},
		&ReminderLog{},
	}
}
