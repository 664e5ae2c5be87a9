package beat

import (
	"context"
	"time"
)

// ListOptions filters beat listings.
type ListOptions struct {
	ProjectID string
	Day       *time.Time
}

// Repository provides persistence for beats.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Beat, error)
	Create(ctx context.Context, b *Beat) error
	Update(ctx context.Context, b *Beat) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]Beat, error)
}
