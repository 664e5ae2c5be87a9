package mocks

import (
	"context"

	"github.com/ptrack/beats/internal/domain/beat"
	"github.com/ptrack/beats/internal/domain/project"
	"github.com/ptrack/beats/internal/repository"
	"github.com/stretchr/testify/mock"
)

// BeatRepository is a mock for repository.BeatRepository.
type BeatRepository struct {
	mock.Mock
}

var _ repository.BeatRepository = (*BeatRepository)(nil)

func (m *BeatRepository) GetByID(ctx context.Context, id string) (*beat.Beat, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*beat.Beat); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BeatRepository) GetActive(ctx context.Context) (*beat.Beat, error) {
	args := m.Called(ctx)
	if b, ok := args.Get(0).(*beat.Beat); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BeatRepository) GetLast(ctx context.Context) (*beat.Beat, error) {
	args := m.Called(ctx)
	if b, ok := args.Get(0).(*beat.Beat); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BeatRepository) Create(ctx context.Context, b *beat.Beat) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BeatRepository) Update(ctx context.Context, b *beat.Beat) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BeatRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BeatRepository) List(ctx context.Context, opts beat.ListOptions) ([]beat.Beat, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]beat.Beat); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BeatRepository) ListByProject(ctx context.Context, projectID string) ([]beat.Beat, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]beat.Beat); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)

func (m *ProjectRepository) GetByID(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context, archived bool) ([]project.Project, error) {
	args := m.Called(ctx, archived)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
