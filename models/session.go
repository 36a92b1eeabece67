package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Session is a signed-in dashboard owner. The upstream bearer token is kept
// sealed with utils.Sealer.
type Session struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID      string    `gorm:"index;not null"`
	SalonID     string    `gorm:"index"`
	Role        string    `gorm:"type:varchar(20)"`
	SealedToken string    `gorm:"type:text;not null"`
	// UserData and SalonData cache the records returned at sign-in.
	UserData  datatypes.JSONType[User]   `gorm:"not null"`
	SalonData datatypes.JSONType[*Salon] `gorm:"not null"`
	ExpiresAt time.Time                  `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

func (s *Session) User() User {
	return s.UserData.Data()
}

// Salon is nil for owners who had no salon at sign-in.
func (s *Session) Salon() *Salon {
	return s.SalonData.Data()
}
