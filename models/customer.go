package models

import "time"

type Customer struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	TotalBookings int        `json:"totalBookings"`
	TotalSpent    Amount     `json:"totalSpent"`
	LastVisit     *time.Time `json:"lastVisit,omitempty"`
}

type CustomerSummary struct {
	TotalCustomers int    `json:"totalCustomers"`
	TotalSpent     string `json:"totalSpent"`
	AverageSpent   string `json:"averageSpent"`
	TotalBookings  int    `json:"totalBookings"`
}
