package repository

import (
	"context"

	"github.com/ptrack/beats/internal/domain/beat"
	"github.com/ptrack/beats/internal/domain/project"
)

// BeatRepository manages beat persistence. GetActive returns the single beat
// with no end time, or storage.ErrNotFound; Create fails with
// storage.ErrActiveBeatExists if an open beat would no longer be unique.
type BeatRepository interface {
	GetByID(ctx context.Context, id string) (*beat.Beat, error)
	GetActive(ctx context.Context) (*beat.Beat, error)
	GetLast(ctx context.Context) (*beat.Beat, error)
	Create(ctx context.Context, b *beat.Beat) error
	Update(ctx context.Context, b *beat.Beat) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts beat.ListOptions) ([]beat.Beat, error)
	ListByProject(ctx context.Context, projectID string) ([]beat.Beat, error)
}

// ProjectRepository manages project persistence
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*project.Project, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, proj *project.Project) error
	Update(ctx context.Context, proj *project.Project) error
	List(ctx context.Context, archived bool) ([]project.Project, error)
}
