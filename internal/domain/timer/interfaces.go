package timer

import (
	"context"

	"github.com/ptrack/beats/internal/domain/beat"
	"github.com/ptrack/beats/internal/domain/project"
)

// BeatRepository provides beat persistence for timer transitions.
type BeatRepository interface {
	GetActive(ctx context.Context) (*beat.Beat, error)
	GetLast(ctx context.Context) (*beat.Beat, error)
	Create(ctx context.Context, b *beat.Beat) error
	Update(ctx context.Context, b *beat.Beat) error
}

// ProjectRepository provides project lookups for timer transitions.
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*project.Project, error)
	Exists(ctx context.Context, id string) (bool, error)
}
