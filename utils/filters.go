package utils

import (
	"sort"
	"strings"
	"time"

	"salonpro-dashboard/models"
)

type BookingFilter struct {
	Status models.BookingStatus
	Query  string
	// Day restricts to bookings starting on the same calendar day, in Day's
	// location. Zero means any day.
	Day time.Time
}

// FilterBookings keeps bookings matching every set criterion. Status is an
// exact, case-sensitive match against the enum. The result is sorted by start
// time.
func FilterBookings(bookings []models.Booking, f BookingFilter) []models.Booking {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if !f.Day.IsZero() && !sameDay(b.StartTime.In(f.Day.Location()), f.Day) {
			continue
		}
		if query != "" && !containsAny(query, b.CustomerName(), b.ServiceTitle(), b.StaffName(), b.Notes) {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

// CountByStatus tallies bookings per status.
func CountByStatus(bookings []models.Booking) map[models.BookingStatus]int {
	counts := make(map[models.BookingStatus]int)
	for _, b := range bookings {
		counts[b.Status]++
	}
	return counts
}

func FilterStaff(staff []models.StaffMember, query, role string) []models.StaffMember {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.StaffMember, 0, len(staff))
	for _, s := range staff {
		if role != "" && !strings.EqualFold(s.Role, role) {
			continue
		}
		if query != "" && !containsAny(query, s.DisplayName(), s.Role) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func FilterServices(services []models.Service, query, category string, active *bool) []models.Service {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		if category != "" && !strings.EqualFold(s.Category, category) {
			continue
		}
		if active != nil && s.IsActive != *active {
			continue
		}
		if query != "" && !containsAny(query, s.Title, s.Description, s.Category) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func FilterProducts(products []models.ProductView, query, visibility string) []models.ProductView {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		switch visibility {
		case "visible":
			if !p.IsActive {
				continue
			}
		case "hidden":
			if p.IsActive {
				continue
			}
		}
		if query != "" && !containsAny(query, p.Title, p.Description, p.Category) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func FilterCustomers(customers []models.Customer, query string) []models.Customer {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return customers
	}
	out := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if containsAny(query, c.Name, c.Email, c.Phone) {
			out = append(out, c)
		}
	}
	return out
}

func containsAny(lowerQuery string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), lowerQuery) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
