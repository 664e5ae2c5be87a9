// Package report folds beat collections into daily, weekly and monthly
// summaries. Everything here is pure: same input list, same output, no I/O.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/ptrack/beats/internal/domain/beat"
	"github.com/ptrack/beats/internal/timeutil"
)

// weekdayNames in week order. Weeks are fixed Monday through Sunday.
var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// BeatLog is one beat entry in a detailed weekly breakdown.
type BeatLog struct {
	ID       string
	Start    time.Time
	End      *time.Time
	Duration time.Duration
}

// WeekOptions controls a weekly breakdown.
type WeekOptions struct {
	WeeksAgo      int
	IncludeDetail bool
}

// WeekBreakdown carries per-weekday results for one Monday-Sunday week.
// Days is populated in summary mode, Logs in detail mode; either way all
// seven weekday keys are present.
type WeekBreakdown struct {
	Days       map[string]time.Duration
	Logs       map[string][]BeatLog
	TotalHours float64
}

// MonthlyTotals carries per-month hour totals. Months maps "YYYY-MM" keys to
// decimal hours; lexicographic key order is chronological.
type MonthlyTotals struct {
	Months       map[string]float64
	TotalMinutes int
	Warnings     []string
}

// DailySummary groups closed beats by the calendar date they started on,
// summing durations per day. Days without beats are absent.
func DailySummary(beats []beat.Beat) map[string]time.Duration {
	out := make(map[string]time.Duration)
	for _, b := range beats {
		if b.IsActive() {
			continue
		}
		out[timeutil.DayKey(b.Start)] += b.Duration()
	}
	return out
}

// TodayTotal sums the durations of beats started on today's date, counting
// an active beat up to now.
func TodayTotal(beats []beat.Beat, today time.Time) time.Duration {
	day := timeutil.Day(today)
	var total time.Duration
	for _, b := range beats {
		if b.Day().Equal(day) {
			total += b.Duration()
		}
	}
	return total
}

// Week computes a weekly breakdown of closed beats whose start date falls
// within the Monday-Sunday week containing today minus opts.WeeksAgo weeks,
// bounds inclusive.
func Week(beats []beat.Beat, today time.Time, opts WeekOptions) WeekBreakdown {
	monday, sunday := timeutil.WeekBounds(today, opts.WeeksAgo)

	var total time.Duration
	days := make(map[string]time.Duration, 7)
	logs := make(map[string][]BeatLog, 7)
	for _, name := range weekdayNames {
		days[name] = 0
		logs[name] = []BeatLog{}
	}

	for _, b := range beats {
		if b.IsActive() {
			continue
		}
		day := b.Day()
		if day.Before(monday) || day.After(sunday) {
			continue
		}
		name := day.Weekday().String()
		d := b.Duration()
		days[name] += d
		total += d
		if opts.IncludeDetail {
			logs[name] = append(logs[name], BeatLog{
				ID:       b.ID,
				Start:    timeutil.Normalize(b.Start),
				End:      b.End,
				Duration: d,
			})
		}
	}

	bd := WeekBreakdown{TotalHours: timeutil.Hours(total)}
	if opts.IncludeDetail {
		bd.Logs = logs
	} else {
		bd.Days = days
	}
	return bd
}

// Monthly sums closed-beat durations per "YYYY-MM" month key. Each beat
// longer than 24 hours produces a warning but still counts toward the
// totals.
func Monthly(beats []beat.Beat) MonthlyTotals {
	perMonth := make(map[string]time.Duration)
	var warned []beat.Beat
	for _, b := range beats {
		if b.IsActive() {
			continue
		}
		if b.Duration() > 24*time.Hour {
			warned = append(warned, b)
		}
		perMonth[timeutil.MonthKey(b.Start)] += b.Duration()
	}

	var grand time.Duration
	months := make(map[string]float64, len(perMonth))
	for key, d := range perMonth {
		months[key] = timeutil.Hours(d)
		grand += d
	}

	sort.Slice(warned, func(i, j int) bool { return warned[i].Start.Before(warned[j].Start) })
	warnings := make([]string, 0, len(warned))
	for _, b := range warned {
		warnings = append(warnings, fmt.Sprintf(
			"Warning: Log %s has duration longer than 24 hours (%s).",
			b.ID, timeutil.FormatDuration(b.Duration()),
		))
	}

	return MonthlyTotals{
		Months:       months,
		TotalMinutes: timeutil.Minutes(grand),
		Warnings:     warnings,
	}
}

// WeekdayNames returns the seven weekday keys in week order, for callers
// that need deterministic iteration.
func WeekdayNames() [7]string {
	return weekdayNames
}
