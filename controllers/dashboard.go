// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"salonpro-dashboard/models"
	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const upcomingLimit = 5

type DashboardController struct {
	Backend  *services.BackendClient
	Location *time.Location
}

type UpcomingBooking struct {
	ID           string               `json:"id"`
	CustomerName string               `json:"customerName"`
	ServiceTitle string               `json:"serviceTitle"`
	StaffName    string               `json:"staffName"`
	StartTime    time.Time            `json:"startTime"`
	Status       models.BookingStatus `json:"status"`
	When         string               `json:"when"`
}

type DashboardOverview struct {
	Salon          *models.Salon                `json:"salon"`
	TodayBookings  int                          `json:"todayBookings"`
	TodayByStatus  map[models.BookingStatus]int `json:"todayByStatus"`
	Upcoming       []UpcomingBooking            `json:"upcoming"`
	MonthRevenue   string                       `json:"monthRevenue"`
	MonthBookings  int                          `json:"monthBookings"`
	ActiveServices int                          `json:"activeServices"`
	StaffCount     int                          `json:"staffCount"`
}

// GetOverview gathers the home page figures from bookings, month analytics,
// services and staff in parallel.
func (dc *DashboardController) GetOverview(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	loc := dc.Location
	if loc == nil {
		loc = time.Local
	}
	now := utils.Now().In(loc)
	ctx := c.Request.Context()
	token := utils.BackendToken(c)

	var (
		bookings []models.Booking
		month    *models.AnalyticsData
		svcs     []models.Service
		staff    []models.StaffMember
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bookings, err = dc.Backend.ListBookings(gctx, token, salonID)
		return err
	})
	g.Go(func() (err error) {
		month, _, err = dc.Backend.GetMonthAnalytics(gctx, token, salonID, loc)
		return err
	})
	g.Go(func() (err error) {
		svcs, err = dc.Backend.ListServices(gctx, token, salonID)
		return err
	})
	g.Go(func() (err error) {
		staff, err = dc.Backend.ListStaff(gctx, token, salonID)
		return err
	})
	if err := g.Wait(); err != nil {
		respondBackendError(c, err, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, BuildOverview(now, utils.CurrentSession(c).Salon(), bookings, month, svcs, staff))
}

func BuildOverview(now time.Time, salon *models.Salon, bookings []models.Booking, month *models.AnalyticsData, svcs []models.Service, staff []models.StaffMember) DashboardOverview {
	today := utils.FilterBookings(bookings, utils.BookingFilter{Day: now})
	overview := DashboardOverview{
		Salon:         salon,
		TodayBookings: len(today),
		TodayByStatus: utils.CountByStatus(today),
		Upcoming:      make([]UpcomingBooking, 0, upcomingLimit),
		StaffCount:    len(staff),
		MonthRevenue:  utils.FormatCurrency(0),
	}
	if month != nil {
		overview.MonthRevenue = utils.FormatCurrency(month.TotalRevenue)
		overview.MonthBookings = month.TotalBookings
	}
	for _, s := range svcs {
		if s.IsActive {
			overview.ActiveServices++
		}
	}

	for _, b := range utils.FilterBookings(bookings, utils.BookingFilter{}) {
		if len(overview.Upcoming) == upcomingLimit {
			break
		}
		if b.StartTime.Before(now) {
			continue
		}
		if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
			continue
		}
		overview.Upcoming = append(overview.Upcoming, UpcomingBooking{
			ID:           b.ID,
			CustomerName: b.CustomerName(),
			ServiceTitle: b.ServiceTitle(),
			StaffName:    b.StaffName(),
			StartTime:    b.StartTime,
			Status:       b.Status,
			When:         utils.DayLabel(now, b.StartTime.In(now.Location())),
		})
	}
	return overview
}
