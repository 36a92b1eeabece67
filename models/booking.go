package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingNoShow    BookingStatus = "NO_SHOW"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

// Booking mirrors the backend booking with its embedded relations.
type Booking struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId,omitempty"`
	SalonID   string        `json:"salonId,omitempty"`
	ServiceID string        `json:"serviceId,omitempty"`
	StaffID   string        `json:"staffId,omitempty"`
	User      *User         `json:"user,omitempty"`
	Salon     *Salon        `json:"salon,omitempty"`
	Service   *Service      `json:"service,omitempty"`
	Staff     *StaffMember  `json:"staff,omitempty"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Status    BookingStatus `json:"status"`
	Notes     string        `json:"notes,omitempty"`
}

func (b Booking) CustomerName() string {
	if b.User != nil {
		return b.User.Name
	}
	return ""
}

func (b Booking) CustomerPhone() string {
	if b.User != nil {
		return b.User.Phone
	}
	return ""
}

func (b Booking) ServiceTitle() string {
	if b.Service != nil {
		return b.Service.Title
	}
	return ""
}

func (b Booking) StaffName() string {
	if b.Staff != nil {
		return b.Staff.DisplayName()
	}
	return ""
}

// AvailabilitySlot is a backend-computed candidate start time.
type AvailabilitySlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type CreateBookingRequest struct {
	SalonID   string    `json:"salonId"`
	ServiceID string    `json:"serviceId"`
	StaffID   string    `json:"staffId"`
	StartTime time.Time `json:"startTime"`
	Notes     string    `json:"notes,omitempty"`
}
