package services

import (
	"math"
	"time"
)

// Timesheet math shared by the fichaje service. Monetary values and hour
// counts are rounded to two decimals.

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// elapsedHours returns the hours between clock-in and clock-out. A negative
// difference means the wall clock rolled over midnight between the two reads
// (23:00 in, 01:00 out), so a day is added back.
func elapsedHours(clockIn, clockOut time.Time) float64 {
	hours := clockOut.Sub(clockIn).Hours()
	if hours < 0 {
		hours += 24
	}
	return hours
}

// payAmount derives pay from an already-rounded duration.
func payAmount(durationHours, hourlyRate float64) float64 {
	return roundTo2(durationHours * hourlyRate)
}

// weekBounds returns the current calendar week around now: Sunday 00:00:00
// local time up to (exclusive) the following Sunday 00:00:00.
func weekBounds(now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := midnight.AddDate(0, 0, -int(now.Weekday()))
	return start, start.AddDate(0, 0, 7)
}

// monthBounds returns the current calendar month around now.
func monthBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
