package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Project, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, proj *Project) error
	Update(ctx context.Context, proj *Project) error
	List(ctx context.Context, archived bool) ([]Project, error)
}
