package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"salonpro-dashboard/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// FormatCurrency renders a dollar amount with two decimals and thousands
// grouping. Numbers and numeric strings are accepted; anything else is $0.00.
func FormatCurrency(v interface{}) string {
	f := ToFloat(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	f = math.Round(f*100) / 100
	if f < 0 {
		return "-$" + numberPrinter.Sprintf("%.2f", -f)
	}
	return "$" + numberPrinter.Sprintf("%.2f", f)
}

func FormatPercentage(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return fmt.Sprintf("%.1f%%", v)
}

// PercentChange is the growth from previous to current, in percent.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

// Percent is part of total, in percent. A zero total yields 0.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

func ToFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case models.Amount:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
