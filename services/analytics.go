package services

import (
	"context"
	"fmt"
	"time"

	"salonpro-dashboard/models"
	"salonpro-dashboard/utils"

	"github.com/pkg/errors"
)

// RangeError is an analytics period or date range the caller got wrong.
type RangeError struct {
	Err error
}

func (e *RangeError) Error() string { return e.Err.Error() }
func (e *RangeError) Unwrap() error { return e.Err }

// The period helpers resolve their range on the salon's wall clock in loc and
// return it with the data.

func (c *BackendClient) GetTodayAnalytics(ctx context.Context, token, salonID string, loc *time.Location) (*models.AnalyticsData, utils.DateRange, error) {
	return c.analyticsFor(ctx, token, salonID, utils.TodayRange(localNow(loc)))
}

func (c *BackendClient) GetWeekAnalytics(ctx context.Context, token, salonID string, loc *time.Location) (*models.AnalyticsData, utils.DateRange, error) {
	return c.analyticsFor(ctx, token, salonID, utils.WeekRange(localNow(loc)))
}

func (c *BackendClient) GetMonthAnalytics(ctx context.Context, token, salonID string, loc *time.Location) (*models.AnalyticsData, utils.DateRange, error) {
	return c.analyticsFor(ctx, token, salonID, utils.MonthRange(localNow(loc)))
}

func (c *BackendClient) GetQuarterAnalytics(ctx context.Context, token, salonID string, loc *time.Location) (*models.AnalyticsData, utils.DateRange, error) {
	return c.analyticsFor(ctx, token, salonID, utils.QuarterRange(localNow(loc)))
}

func (c *BackendClient) GetYearAnalytics(ctx context.Context, token, salonID string, loc *time.Location) (*models.AnalyticsData, utils.DateRange, error) {
	return c.analyticsFor(ctx, token, salonID, utils.YearRange(localNow(loc)))
}

func (c *BackendClient) GetLastNDaysAnalytics(ctx context.Context, token, salonID string, n int, loc *time.Location) (*models.AnalyticsData, utils.DateRange, error) {
	return c.analyticsFor(ctx, token, salonID, utils.LastNDaysRange(localNow(loc), n))
}

// GetCustomAnalytics covers from..to (YYYY-MM-DD, inclusive) in loc.
func (c *BackendClient) GetCustomAnalytics(ctx context.Context, token, salonID, from, to string, loc *time.Location) (*models.AnalyticsData, utils.DateRange, error) {
	r, err := utils.CustomRange(from, to, orLocal(loc))
	if err != nil {
		return nil, utils.DateRange{}, &RangeError{Err: err}
	}
	return c.analyticsFor(ctx, token, salonID, r)
}

type PeriodQuery struct {
	Period string
	// From and To are only read for the "custom" period.
	From string
	To   string
	// Compare also loads the period before, for growth figures.
	Compare bool
}

// PeriodAnalytics is the data of a resolved period and, when compared, of
// the period immediately before it.
type PeriodAnalytics struct {
	Range    utils.DateRange
	Current  *models.AnalyticsData
	Previous *models.AnalyticsData
}

func (c *BackendClient) GetPeriodAnalytics(ctx context.Context, token, salonID string, q PeriodQuery, loc *time.Location) (*PeriodAnalytics, error) {
	var (
		data *models.AnalyticsData
		r    utils.DateRange
		err  error
	)
	switch q.Period {
	case "today":
		data, r, err = c.GetTodayAnalytics(ctx, token, salonID, loc)
	case "week", "":
		data, r, err = c.GetWeekAnalytics(ctx, token, salonID, loc)
	case "month":
		data, r, err = c.GetMonthAnalytics(ctx, token, salonID, loc)
	case "quarter":
		data, r, err = c.GetQuarterAnalytics(ctx, token, salonID, loc)
	case "year":
		data, r, err = c.GetYearAnalytics(ctx, token, salonID, loc)
	case "last7":
		data, r, err = c.GetLastNDaysAnalytics(ctx, token, salonID, 7, loc)
	case "last30":
		data, r, err = c.GetLastNDaysAnalytics(ctx, token, salonID, 30, loc)
	case "custom":
		data, r, err = c.GetCustomAnalytics(ctx, token, salonID, q.From, q.To, loc)
	default:
		return nil, &RangeError{Err: fmt.Errorf("unknown period %q", q.Period)}
	}
	if err != nil {
		return nil, err
	}

	result := &PeriodAnalytics{Range: r, Current: data}
	if q.Compare {
		previous, _, err := c.analyticsFor(ctx, token, salonID, utils.PreviousRange(q.Period, r))
		if err != nil {
			return nil, errors.WithMessage(err, "previous period")
		}
		result.Previous = previous
	}
	return result, nil
}

func (c *BackendClient) analyticsFor(ctx context.Context, token, salonID string, r utils.DateRange) (*models.AnalyticsData, utils.DateRange, error) {
	data, err := c.Analytics(ctx, token, salonID, r)
	if err != nil {
		return nil, r, err
	}
	return data, r, nil
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

func localNow(loc *time.Location) time.Time {
	return utils.Now().In(orLocal(loc))
}

type ServiceBreakdown struct {
	Title        string `json:"title"`
	Count        int    `json:"count"`
	Revenue      string `json:"revenue"`
	RevenueShare string `json:"revenueShare"`
}

type StaffBreakdown struct {
	Name       string `json:"name"`
	Bookings   int    `json:"bookings"`
	Revenue    string `json:"revenue"`
	Commission string `json:"commission"`
}

type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Label   string  `json:"label"`
}

// AnalyticsReport is the display-ready analytics page.
type AnalyticsReport struct {
	Period              string             `json:"period"`
	StartDate           string             `json:"startDate"`
	EndDate             string             `json:"endDate"`
	TotalRevenue        string             `json:"totalRevenue"`
	TotalBookings       int                `json:"totalBookings"`
	CompletedBookings   int                `json:"completedBookings"`
	CancelledBookings   int                `json:"cancelledBookings"`
	NoShowBookings      int                `json:"noShowBookings"`
	AverageBookingValue string             `json:"averageBookingValue"`
	CompletionRate      string             `json:"completionRate"`
	CancellationRate    string             `json:"cancellationRate"`
	RevenueGrowth       *string            `json:"revenueGrowth,omitempty"`
	BookingGrowth       *string            `json:"bookingGrowth,omitempty"`
	TopServices         []ServiceBreakdown `json:"topServices"`
	StaffPerformance    []StaffBreakdown   `json:"staffPerformance"`
	RevenueByDay        []RevenuePoint     `json:"revenueByDay"`
}

// BuildAnalyticsReport formats current for display. Growth figures are only
// set when previous is given.
func BuildAnalyticsReport(period string, r utils.DateRange, current, previous *models.AnalyticsData) AnalyticsReport {
	if current == nil {
		current = &models.AnalyticsData{}
	}
	total := current.TotalRevenue.Float64()
	report := AnalyticsReport{
		Period:              period,
		StartDate:           r.StartDate(),
		EndDate:             r.EndDate(),
		TotalRevenue:        utils.FormatCurrency(total),
		TotalBookings:       current.TotalBookings,
		CompletedBookings:   current.CompletedBookings,
		CancelledBookings:   current.CancelledBookings,
		NoShowBookings:      current.NoShowBookings,
		AverageBookingValue: utils.FormatCurrency(current.AverageBookingValue),
		CompletionRate: utils.FormatPercentage(
			utils.Percent(float64(current.CompletedBookings), float64(current.TotalBookings))),
		CancellationRate: utils.FormatPercentage(
			utils.Percent(float64(current.CancelledBookings), float64(current.TotalBookings))),
		TopServices:      make([]ServiceBreakdown, 0, len(current.TopServices)),
		StaffPerformance: make([]StaffBreakdown, 0, len(current.StaffPerformance)),
		RevenueByDay:     make([]RevenuePoint, 0, len(current.RevenueByDay)),
	}

	if previous != nil {
		revenue := utils.FormatPercentage(utils.PercentChange(total, previous.TotalRevenue.Float64()))
		bookings := utils.FormatPercentage(utils.PercentChange(
			float64(current.TotalBookings), float64(previous.TotalBookings)))
		report.RevenueGrowth = &revenue
		report.BookingGrowth = &bookings
	}

	for _, s := range current.TopServices {
		report.TopServices = append(report.TopServices, ServiceBreakdown{
			Title:        s.Title,
			Count:        s.Count,
			Revenue:      utils.FormatCurrency(s.Revenue),
			RevenueShare: utils.FormatPercentage(utils.Percent(s.Revenue.Float64(), total)),
		})
	}
	for _, s := range current.StaffPerformance {
		report.StaffPerformance = append(report.StaffPerformance, StaffBreakdown{
			Name:       s.Name,
			Bookings:   s.Bookings,
			Revenue:    utils.FormatCurrency(s.Revenue),
			Commission: utils.FormatCurrency(s.Commission),
		})
	}
	for _, d := range current.RevenueByDay {
		report.RevenueByDay = append(report.RevenueByDay, RevenuePoint{
			Date:    d.Date,
			Revenue: d.Revenue.Float64(),
			Label:   utils.FormatCurrency(d.Revenue),
		})
	}
	return report
}
