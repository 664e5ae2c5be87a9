package transport

import (
	"time"

	"github.com/ptrack/beats/internal/domain/beat"
	"github.com/ptrack/beats/internal/domain/report"
	"github.com/ptrack/beats/internal/domain/timer"
	"github.com/ptrack/beats/internal/timeutil"
)

// recordTimeRequest is the body for start/stop timer calls. A missing or
// empty time means "now".
type recordTimeRequest struct {
	Time string `json:"time,omitempty"`
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Estimation  string `json:"estimation,omitempty"`
}

type updateProjectRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Estimation  string `json:"estimation,omitempty"`
	Archived    bool   `json:"archived"`
}

type createBeatRequest struct {
	ProjectID string `json:"project_id"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
}

type updateBeatRequest struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Start     string `json:"start"`
	End       string `json:"end,omitempty"`
}

type beatResponse struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"project_id"`
	Start     string  `json:"start"`
	End       *string `json:"end"`
	Duration  string  `json:"duration"`
	IsActive  bool    `json:"is_active"`
}

type durationResponse struct {
	Duration string `json:"duration"`
}

type monthlyTotalsResponse struct {
	DurationsPerMonth map[string]float64 `json:"durations_per_month"`
	TotalMinutes      int                `json:"total_minutes"`
	Warnings          []string           `json:"warnings"`
}

type statusResponse struct {
	IsBeating bool           `json:"isBeating"`
	Project   any            `json:"project,omitempty"`
	Since     *string        `json:"since,omitempty"`
	SoFar     *string        `json:"so_far,omitempty"`
	LastBeat  *lastBeatBrief `json:"last_beat,omitempty"`
}

type lastBeatBrief struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"project_id"`
	End       *string `json:"end"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func formatTimestamp(t time.Time) string {
	return timeutil.Normalize(t).Format(time.RFC3339)
}

func formatTimestampPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTimestamp(*t)
	return &s
}

func toBeatResponse(b *beat.Beat) beatResponse {
	return beatResponse{
		ID:        b.ID,
		ProjectID: b.ProjectID,
		Start:     formatTimestamp(b.Start),
		End:       formatTimestampPtr(b.End),
		Duration:  timeutil.FormatDuration(b.Duration()),
		IsActive:  b.IsActive(),
	}
}

func toStatusResponse(st *timer.Status) statusResponse {
	if st.Running {
		soFar := timeutil.FormatDuration(st.Elapsed)
		return statusResponse{
			IsBeating: true,
			Project:   st.Project,
			Since:     formatTimestampPtr(st.Since),
			SoFar:     &soFar,
		}
	}

	resp := statusResponse{IsBeating: false}
	if st.LastBeat != nil {
		resp.LastBeat = &lastBeatBrief{
			ID:        st.LastBeat.ID,
			ProjectID: st.LastBeat.ProjectID,
			End:       formatTimestampPtr(st.LastBeat.End),
		}
	}
	return resp
}

// toWeekResponse flattens a breakdown into the weekday-keyed shape, either
// duration strings or per-beat log lists depending on the mode.
func toWeekResponse(bd *report.WeekBreakdown) map[string]any {
	out := make(map[string]any, 8)
	for _, name := range report.WeekdayNames() {
		if bd.Logs != nil {
			logs := make([]map[string]any, 0, len(bd.Logs[name]))
			for _, l := range bd.Logs[name] {
				logs = append(logs, map[string]any{
					"id":       l.ID,
					"start":    formatTimestamp(l.Start),
					"end":      formatTimestampPtr(l.End),
					"duration": timeutil.FormatDuration(l.Duration),
				})
			}
			out[name] = logs
		} else {
			out[name] = timeutil.FormatDuration(bd.Days[name])
		}
	}
	out["total_hours"] = bd.TotalHours
	return out
}

func toDailyResponse(days map[string]time.Duration) map[string]string {
	out := make(map[string]string, len(days))
	for day, d := range days {
		out[day] = timeutil.FormatDuration(d)
	}
	return out
}
