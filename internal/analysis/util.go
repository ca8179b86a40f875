package analysis

import (
	"fmt"
	"time"
)

// PercentageChange returns the change from previous to current in percent. A zero
// previous value yields 100 when current is positive and 0 otherwise.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// FormatNumber renders n for display, abbreviating thousands ("1.2K").
func FormatNumber(n float64) string {
	if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%d", int(n))
}

// Date range labels accepted by ParseDateRange.
const (
	RangeLast7Days  = "Last 7 days"
	RangeLast30Days = "Last 30 days"
	RangeLast90Days = "Last 90 days"
	RangeThisYear   = "This year"
)

// ParseDateRange returns the start and end of a named range ending at now.
// Unknown labels default to the last 30 days.
func ParseDateRange(label string, now time.Time) (start, end time.Time) {
	switch label {
	case RangeLast7Days:
		start = now.AddDate(0, 0, -7)
	case RangeLast90Days:
		start = now.AddDate(0, 0, -90)
	case RangeThisYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		start = now.AddDate(0, 0, -30)
	}
	return start, now
}

// RangeDays returns the whole number of days covered by a named range.
func RangeDays(label string, now time.Time) int {
	start, end := ParseDateRange(label, now)
	return int(end.Sub(start).Hours() / 24)
}
