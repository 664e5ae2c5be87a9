package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ptrack/beats/internal/domain/beat"
)

// BeatRepository provides the beat history reports are computed from.
type BeatRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]beat.Beat, error)
}

// Service fetches a project's beats and applies the aggregation functions.
type Service struct {
	beats  BeatRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new report service.
func NewService(beats BeatRepository, logger *slog.Logger) *Service {
	return &Service{beats: beats, logger: logger, now: time.Now}
}

// Daily returns the per-day duration totals for a project.
func (s *Service) Daily(ctx context.Context, projectID string) (map[string]time.Duration, error) {
	beats, err := s.beats.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing beats: %w", err)
	}
	return DailySummary(beats), nil
}

// Today returns the total time spent on a project today.
func (s *Service) Today(ctx context.Context, projectID string) (time.Duration, error) {
	beats, err := s.beats.ListByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("listing beats: %w", err)
	}
	return TodayTotal(beats, s.now()), nil
}

// Week returns the weekly breakdown for a project.
func (s *Service) Week(ctx context.Context, projectID string, opts WeekOptions) (*WeekBreakdown, error) {
	beats, err := s.beats.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing beats: %w", err)
	}
	bd := Week(beats, s.now(), opts)
	return &bd, nil
}

// Monthly returns the per-month totals for a project.
func (s *Service) Monthly(ctx context.Context, projectID string) (*MonthlyTotals, error) {
	beats, err := s.beats.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing beats: %w", err)
	}
	mt := Monthly(beats)
	return &mt, nil
}
