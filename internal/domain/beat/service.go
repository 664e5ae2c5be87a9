package beat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ptrack/beats/internal/storage"
	"github.com/ptrack/beats/internal/timeutil"
)

// Service handles beat CRUD operations outside the timer state machine.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new beat service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// CreateRequest defines beat creation inputs.
type CreateRequest struct {
	ProjectID string
	Start     *time.Time
	End       *time.Time
}

// UpdateRequest defines beat update inputs.
type UpdateRequest struct {
	ID        string
	ProjectID string
	Start     time.Time
	End       *time.Time
}

// Create records a new beat. Start defaults to now; a closed interval must
// satisfy end >= start.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Beat, error) {
	if strings.TrimSpace(req.ProjectID) == "" {
		return nil, ErrInvalidInput
	}

	start := s.now()
	if req.Start != nil {
		start = *req.Start
	}
	start = timeutil.Normalize(start)

	b := &Beat{ProjectID: req.ProjectID, Start: start}
	if req.End != nil {
		end := timeutil.Normalize(*req.End)
		if end.Before(start) {
			return nil, ErrInvalidEndTime
		}
		b.End = &end
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, req.ProjectID)
		}
		return nil, fmt.Errorf("creating beat: %w", err)
	}
	return b, nil
}

// Get fetches a beat by ID.
func (s *Service) Get(ctx context.Context, id string) (*Beat, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBeatNotFound
		}
		return nil, fmt.Errorf("getting beat: %w", err)
	}
	return b, nil
}

// Update replaces a beat's fields. The end >= start invariant is re-checked
// because external edits may move either endpoint.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Beat, error) {
	if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.ProjectID) == "" {
		return nil, ErrInvalidInput
	}

	b := &Beat{
		ID:        req.ID,
		ProjectID: req.ProjectID,
		Start:     timeutil.Normalize(req.Start),
	}
	if req.End != nil {
		end := timeutil.Normalize(*req.End)
		if end.Before(b.Start) {
			return nil, ErrInvalidEndTime
		}
		b.End = &end
	}

	if err := s.repo.Update(ctx, b); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBeatNotFound
		}
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, req.ProjectID)
		}
		return nil, fmt.Errorf("updating beat: %w", err)
	}
	return b, nil
}

// Delete removes a beat by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrBeatNotFound
		}
		return fmt.Errorf("deleting beat: %w", err)
	}
	return nil
}

// List returns beats matching the optional project and day filters.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Beat, error) {
	beats, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing beats: %w", err)
	}
	return beats, nil
}
