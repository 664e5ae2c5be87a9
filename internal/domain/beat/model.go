package beat

import (
	"time"

	"github.com/ptrack/beats/internal/timeutil"
)

// Beat is one recorded work session against a project. A nil End means the
// timer is still running.
type Beat struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	Start     time.Time  `json:"start"`
	End       *time.Time `json:"end,omitempty"`
}

// IsActive reports whether this beat represents a running timer.
func (b Beat) IsActive() bool {
	return b.End == nil
}

// Duration returns the elapsed time of this beat. Active beats are measured
// up to now.
func (b Beat) Duration() time.Duration {
	end := time.Now()
	if b.End != nil {
		end = *b.End
	}
	return timeutil.Normalize(end).Sub(timeutil.Normalize(b.Start))
}

// Day returns the calendar date (midnight UTC) this beat started on.
func (b Beat) Day() time.Time {
	return timeutil.Day(b.Start)
}
