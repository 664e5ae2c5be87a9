// Package timer implements the global timer state machine. At most one beat
// may be open system-wide; state is reconstructed from the repository on
// every operation, never cached in process memory.
package timer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ptrack/beats/internal/domain/beat"
	"github.com/ptrack/beats/internal/domain/project"
	"github.com/ptrack/beats/internal/metrics"
	"github.com/ptrack/beats/internal/storage"
	"github.com/ptrack/beats/internal/timeutil"
)

// Service drives start/stop transitions and enforces the single-active-timer
// invariant. The mutex serializes the check-then-act sequence within this
// process; the store's uniqueness constraint on open beats covers writers the
// mutex cannot see.
type Service struct {
	mu       sync.Mutex
	beats    BeatRepository
	projects ProjectRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new timer service.
func NewService(beats BeatRepository, projects ProjectRepository, logger *slog.Logger) *Service {
	return &Service{beats: beats, projects: projects, logger: logger, now: time.Now}
}

// Status is a snapshot of the timer state.
type Status struct {
	Running  bool
	Project  *project.Project
	Since    *time.Time
	Elapsed  time.Duration
	LastBeat *beat.Beat
}

// Start opens a new beat for the project. startTime defaults to now.
func (s *Service) Start(ctx context.Context, projectID string, startTime *time.Time) (*beat.Beat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("checking project: %w", err)
	}
	if !exists {
		metrics.TimerRejections.WithLabelValues("project_not_found").Inc()
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}

	active, err := s.beats.GetActive(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("checking active beat: %w", err)
	}
	if active != nil {
		metrics.TimerRejections.WithLabelValues("already_running").Inc()
		return nil, &AlreadyRunningError{Active: *active}
	}

	start := s.now()
	if startTime != nil {
		start = *startTime
	}

	b := &beat.Beat{ProjectID: projectID, Start: timeutil.Normalize(start)}
	if err := s.beats.Create(ctx, b); err != nil {
		if errors.Is(err, storage.ErrActiveBeatExists) {
			// Another writer won the race between our check and the insert.
			metrics.TimerRejections.WithLabelValues("already_running").Inc()
			return nil, s.alreadyRunning(ctx)
		}
		return nil, fmt.Errorf("creating beat: %w", err)
	}

	metrics.TimerStarts.Inc()
	if s.logger != nil {
		s.logger.Info("timer started", "project_id", projectID, "beat_id", b.ID, "start", b.Start)
	}
	return b, nil
}

// Stop closes the active beat. endTime defaults to now and must not precede
// the beat's start; nothing is persisted on a failed validation.
func (s *Service) Stop(ctx context.Context, endTime *time.Time) (*beat.Beat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.beats.GetActive(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.TimerRejections.WithLabelValues("no_active_timer").Inc()
			return nil, ErrNoActiveTimer
		}
		return nil, fmt.Errorf("checking active beat: %w", err)
	}

	end := s.now()
	if endTime != nil {
		end = *endTime
	}
	end = timeutil.Normalize(end)

	if end.Before(timeutil.Normalize(active.Start)) {
		metrics.TimerRejections.WithLabelValues("invalid_end_time").Inc()
		return nil, beat.ErrInvalidEndTime
	}

	active.End = &end
	if err := s.beats.Update(ctx, active); err != nil {
		return nil, fmt.Errorf("closing beat: %w", err)
	}

	metrics.TimerStops.Inc()
	if s.logger != nil {
		s.logger.Info("timer stopped", "beat_id", active.ID, "duration", active.Duration())
	}
	return active, nil
}

// Status reports whether a timer is running. When idle it falls back to the
// most recent beat by start, or an empty snapshot if none were ever recorded.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	active, err := s.beats.GetActive(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("checking active beat: %w", err)
	}

	if active != nil {
		proj, err := s.projects.GetByID(ctx, active.ProjectID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("getting project: %w", err)
		}
		if proj != nil {
			since := active.Start
			return &Status{
				Running: true,
				Project: proj,
				Since:   &since,
				Elapsed: active.Duration(),
			}, nil
		}
	}

	last, err := s.beats.GetLast(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &Status{Running: false}, nil
		}
		return nil, fmt.Errorf("getting last beat: %w", err)
	}
	return &Status{Running: false, LastBeat: last}, nil
}

func (s *Service) alreadyRunning(ctx context.Context) error {
	active, err := s.beats.GetActive(ctx)
	if err != nil || active == nil {
		return ErrTimerAlreadyRunning
	}
	return &AlreadyRunningError{Active: *active}
}
