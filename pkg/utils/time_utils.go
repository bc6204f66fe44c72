package utils

import (
	"math"
	"time"
)

// startOfDay truncates t to midnight of its calendar day, keeping the
// location so DST shifts don't leak into day arithmetic.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole-day difference between the calendar
// day of target and the calendar day of now. Time-of-day components
// never affect the count: a target later today is always 0 days away.
func DaysBetween(now, target time.Time) int {
	diff := startOfDay(target).Sub(startOfDay(now))
	return int(math.Round(diff.Hours() / 24))
}

// FormatApplyDate renders a maintenance apply date the way it appears
// in notifications, e.g. "Apr 15 2025 03:00:00".
func FormatApplyDate(t time.Time) string {
	return t.Format("Jan 02 2006 15:04:05")
}
