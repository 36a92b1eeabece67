package models

type Service struct {
	ID              string `json:"id"`
	SalonID         string `json:"salonId,omitempty"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Price           Amount `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
	Category        string `json:"category,omitempty"`
	IsActive        bool   `json:"isActive"`
}

type ServiceInput struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"min=0"`
	DurationMinutes int     `json:"durationMinutes" binding:"required,min=1"`
	Category        string  `json:"category"`
}

type UpdateServiceInput struct {
	Title           *string  `json:"title,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	DurationMinutes *int     `json:"durationMinutes,omitempty" binding:"omitempty,min=1"`
	Category        *string  `json:"category,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`
}
