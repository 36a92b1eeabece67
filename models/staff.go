package models

type DayAvailability struct {
	IsAvailable bool     `json:"isAvailable"`
	Slots       []string `json:"slots"`
}

type StaffMember struct {
	ID           string                     `json:"id"`
	SalonID      string                     `json:"salonId,omitempty"`
	Name         string                     `json:"name,omitempty"`
	User         *User                      `json:"user,omitempty"`
	Role         string                     `json:"role"`
	Availability map[string]DayAvailability `json:"availability,omitempty"`
}

// DisplayName prefers the staff record's own name and falls back to the
// linked user account.
func (s StaffMember) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.User != nil {
		return s.User.Name
	}
	return ""
}

type StaffInput struct {
	Name         string                     `json:"name" binding:"required"`
	Email        string                     `json:"email" binding:"omitempty,email"`
	Phone        string                     `json:"phone"`
	Role         string                     `json:"role" binding:"required"`
	Availability map[string]DayAvailability `json:"availability"`
}

type UpdateStaffInput struct {
	Name         *string                    `json:"name,omitempty"`
	Role         *string                    `json:"role,omitempty"`
	Availability map[string]DayAvailability `json:"availability,omitempty"`
}
