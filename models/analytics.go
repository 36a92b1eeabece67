package models

type ServiceStat struct {
	ServiceID string `json:"serviceId"`
	Title     string `json:"title"`
	Count     int    `json:"count"`
	Revenue   Amount `json:"revenue"`
}

type StaffStat struct {
	StaffID    string `json:"staffId"`
	Name       string `json:"name"`
	Bookings   int    `json:"bookings"`
	Revenue    Amount `json:"revenue"`
	Commission Amount `json:"commission"`
}

type DailyRevenue struct {
	Date    string `json:"date"`
	Revenue Amount `json:"revenue"`
}

// AnalyticsData is the backend analytics payload for a salon and range.
type AnalyticsData struct {
	TotalRevenue        Amount         `json:"totalRevenue"`
	TotalBookings       int            `json:"totalBookings"`
	CompletedBookings   int            `json:"completedBookings"`
	CancelledBookings   int            `json:"cancelledBookings"`
	NoShowBookings      int            `json:"noShowBookings"`
	AverageBookingValue Amount         `json:"averageBookingValue"`
	TopServices         []ServiceStat  `json:"topServices"`
	StaffPerformance    []StaffStat    `json:"staffPerformance"`
	RevenueByDay        []DailyRevenue `json:"revenueByDay"`
}
