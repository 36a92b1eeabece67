package models

// Salon is the tenant business entity owning services, staff, products and
// bookings.
type Salon struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	AddressID   string `json:"addressId,omitempty"`
	OwnerID     string `json:"ownerId,omitempty"`
}

type Address struct {
	ID         string `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	SalonID    string `json:"salonId,omitempty"`
	UserID     string `json:"userId,omitempty"`
}

// BusinessInfo is the settings page view merged from the salon, its owner
// and the salon address.
type BusinessInfo struct {
	SalonID     string `json:"salonId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	OwnerName   string `json:"ownerName"`
	OwnerEmail  string `json:"ownerEmail"`
	OwnerPhone  string `json:"ownerPhone"`
	AddressID   string `json:"addressId,omitempty"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}

// BusinessInfoPatch carries the fields the owner edited. Nil fields are left
// untouched.
type BusinessInfoPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" binding:"omitempty,email"`
	OwnerName   *string `json:"ownerName"`
	OwnerPhone  *string `json:"ownerPhone"`
	Street      *string `json:"street"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	PostalCode  *string `json:"postalCode"`
	Country     *string `json:"country"`
}
