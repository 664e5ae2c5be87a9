// Package timeutil provides canonical timestamp handling for the rest of the
// system. Every timestamp is normalized to UTC before it reaches a comparison
// or subtraction; offset-less input is taken to mean UTC.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

// Normalize converts t to its canonical UTC form.
func Normalize(t time.Time) time.Time {
	return t.UTC()
}

// Day truncates t to midnight UTC of the calendar date it falls on.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey returns the calendar date of t as "YYYY-MM-DD".
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthKey returns the calendar month of t as "YYYY-MM". Lexicographic order
// of month keys is chronological order.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// Parse reads an RFC 3339 timestamp. Input without an offset is accepted and
// interpreted as UTC.
func Parse(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
}

// FormatDuration renders d as H:MM:SS with unpadded hours, e.g. "2:00:00".
func FormatDuration(d time.Duration) string {
	neg := ""
	if d < 0 {
		neg = "-"
		d = -d
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%s%d:%02d:%02d", neg, h, m, s)
}

// Hours converts d to decimal hours rounded to 2 places.
func Hours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

// Minutes converts d to whole minutes, rounded.
func Minutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}

// WeekBounds returns the Monday and Sunday dates (midnight UTC) of the week
// containing ref shifted back by weeksAgo weeks. Weeks start on Monday.
func WeekBounds(ref time.Time, weeksAgo int) (monday, sunday time.Time) {
	day := Day(ref.AddDate(0, 0, -7*weeksAgo))
	offset := (int(day.Weekday()) + 6) % 7
	monday = day.AddDate(0, 0, -offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}
