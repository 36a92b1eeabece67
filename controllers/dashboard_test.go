package controllers

import (
	"testing"
	"time"

	"salonpro-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOverview(t *testing.T) {
	now := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{ID: "past", Status: models.BookingCompleted, StartTime: now.Add(-2 * time.Hour)},
		{ID: "later", Status: models.BookingConfirmed, StartTime: now.Add(3 * time.Hour)},
		{ID: "cancelled", Status: models.BookingCancelled, StartTime: now.Add(4 * time.Hour)},
		{ID: "tomorrow", Status: models.BookingPending, StartTime: now.Add(24 * time.Hour)},
	}
	services := []models.Service{{IsActive: true}, {IsActive: false}}
	staff := []models.StaffMember{{ID: "1"}, {ID: "2"}}

	o := BuildOverview(now, &models.Salon{ID: "s1"}, bookings, &models.AnalyticsData{TotalRevenue: 4321.5, TotalBookings: 40}, services, staff)

	assert.Equal(t, 3, o.TodayBookings)
	assert.Equal(t, 1, o.TodayByStatus[models.BookingCompleted])
	assert.Equal(t, "$4,321.50", o.MonthRevenue)
	assert.Equal(t, 1, o.ActiveServices)
	assert.Equal(t, 2, o.StaffCount)
	require.Len(t, o.Upcoming, 2)
	assert.Equal(t, "later", o.Upcoming[0].ID)
	assert.Equal(t, "Today", o.Upcoming[0].When)
	assert.Equal(t, "Tomorrow", o.Upcoming[1].When)
}

func TestSummarizeCustomers(t *testing.T) {
	summary := SummarizeCustomers([]models.Customer{
		{Name: "A", TotalSpent: 100, TotalBookings: 2},
		{Name: "B", TotalSpent: 50.5, TotalBookings: 1},
	})
	assert.Equal(t, 2, summary.TotalCustomers)
	assert.Equal(t, "$150.50", summary.TotalSpent)
	assert.Equal(t, "$75.25", summary.AverageSpent)
	assert.Equal(t, 3, summary.TotalBookings)

	assert.Equal(t, "$0.00", SummarizeCustomers(nil).AverageSpent)
}
