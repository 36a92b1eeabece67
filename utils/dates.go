// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

const (
	isoMillis  = "2006-01-02T15:04:05.000Z"
	dateLayout = "2006-01-02"
)

// Now is replaced in tests.
var Now = time.Now

type DateRange struct {
	Start time.Time
	End   time.Time
}

// StartDate and EndDate render the range the way the analytics endpoint
// expects its query parameters: UTC, millisecond precision.
func (r DateRange) StartDate() string { return r.Start.UTC().Format(isoMillis) }
func (r DateRange) EndDate() string   { return r.End.UTC().Format(isoMillis) }

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DaysBetween counts calendar days from start to end, each read in its own
// location. Days shortened or stretched by a DST change still count as one.
func DaysBetween(start, end time.Time) int {
	return int(civilDay(end).Sub(civilDay(start)).Hours() / 24)
}

func civilDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayLabel renders a future day relative to now: "Today", "Tomorrow", "3 days".
func DayLabel(now, t time.Time) string {
	switch d := DaysBetween(now, t); {
	case d == 0:
		return "Today"
	case d == 1:
		return "Tomorrow"
	case d < 0:
		return t.Format(dateLayout)
	default:
		return fmt.Sprintf("%d days", d)
	}
}

func TodayRange(now time.Time) DateRange {
	return DateRange{Start: BeginningOfDay(now), End: EndOfDay(now)}
}

// WeekRange spans Sunday 00:00:00.000 to Saturday 23:59:59.999 of the week
// containing now.
func WeekRange(now time.Time) DateRange {
	start := BeginningOfDay(now).AddDate(0, 0, -int(now.Weekday()))
	return DateRange{Start: start, End: EndOfDay(start.AddDate(0, 0, 6))}
}

func MonthRange(now time.Time) DateRange {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return DateRange{Start: first, End: EndOfDay(first.AddDate(0, 1, -1))}
}

func QuarterRange(now time.Time) DateRange {
	quarter := (int(now.Month()) - 1) / 3
	first := time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, now.Location())
	return DateRange{Start: first, End: EndOfDay(first.AddDate(0, 3, -1))}
}

func YearRange(now time.Time) DateRange {
	return DateRange{
		Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()),
		End:   EndOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())),
	}
}

// LastNDaysRange covers the n calendar days ending today, today included.
func LastNDaysRange(now time.Time, n int) DateRange {
	if n < 1 {
		n = 1
	}
	return DateRange{
		Start: BeginningOfDay(now.AddDate(0, 0, -(n - 1))),
		End:   EndOfDay(now),
	}
}

// CustomRange parses two YYYY-MM-DD dates in loc and spans them inclusively.
func CustomRange(from, to string, loc *time.Location) (DateRange, error) {
	start, err := time.ParseInLocation(dateLayout, from, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q", from)
	}
	end, err := time.ParseInLocation(dateLayout, to, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q", to)
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("end date %s is before start date %s", to, from)
	}
	return DateRange{Start: start, End: EndOfDay(end)}, nil
}

// RangeForPeriod resolves a named analytics period.
func RangeForPeriod(period string, now time.Time) (DateRange, error) {
	switch period {
	case "today":
		return TodayRange(now), nil
	case "week", "":
		return WeekRange(now), nil
	case "month":
		return MonthRange(now), nil
	case "quarter":
		return QuarterRange(now), nil
	case "year":
		return YearRange(now), nil
	case "last7":
		return LastNDaysRange(now, 7), nil
	case "last30":
		return LastNDaysRange(now, 30), nil
	}
	return DateRange{}, fmt.Errorf("unknown period %q", period)
}

func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, loc)
}

func FormatDay(t time.Time) string {
	return t.Format(dateLayout)
}

// PreviousRange is the period immediately before r, used for growth figures.
// Calendar periods step back by whole months, quarters or years; anything
// else steps back by the same number of days.
func PreviousRange(period string, r DateRange) DateRange {
	switch period {
	case "month":
		return MonthRange(r.Start.AddDate(0, -1, 0))
	case "quarter":
		return QuarterRange(r.Start.AddDate(0, -3, 0))
	case "year":
		return YearRange(r.Start.AddDate(-1, 0, 0))
	}
	days := DaysBetween(r.Start, r.End) + 1
	return DateRange{
		Start: BeginningOfDay(r.Start.AddDate(0, 0, -days)),
		End:   EndOfDay(r.Start.AddDate(0, 0, -1)),
	}
}
