package models

import "time"

const (
	ProductStatusActive = "Active"
	ProductStatusHidden = "Hidden"
)

type Product struct {
	ID          string `json:"id"`
	SalonID     string `json:"salonId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Price       Amount `json:"price"`
	Quantity    int    `json:"quantity"`
	Category    string `json:"category,omitempty"`
}

// ProductView adds the dashboard-only visibility convention: a product with
// quantity 0 is hidden, and OriginalStock is the quantity to restore.
type ProductView struct {
	Product
	IsActive      bool   `json:"isActive"`
	OriginalStock int    `json:"originalStock"`
	Status        string `json:"status"`
	PriceLabel    string `json:"priceLabel"`
}

// ProductStock remembers the last non-zero quantity seen for a product so a
// hidden product can be shown again with its previous stock.
type ProductStock struct {
	ProductID     string `gorm:"primaryKey"`
	SalonID       string `gorm:"index;not null"`
	OriginalStock int    `gorm:"not null"`
	UpdatedAt     time.Time
}

type ProductInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Quantity    int     `json:"quantity" binding:"min=0"`
	Category    string  `json:"category"`
}

type UpdateProductInput struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Quantity    *int     `json:"quantity,omitempty" binding:"omitempty,min=0"`
	Category    *string  `json:"category,omitempty"`
}
