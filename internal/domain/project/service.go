package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ptrack/beats/internal/storage"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name        string
	Description string
	Estimation  string
}

// UpdateRequest defines project update inputs.
type UpdateRequest struct {
	ID          string
	Name        string
	Description string
	Estimation  string
	Archived    bool
}

// Create creates a new project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	proj := &Project{
		Name:        req.Name,
		Description: req.Description,
		Estimation:  req.Estimation,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// Update replaces a project's fields.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Project, error) {
	if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	proj := &Project{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Estimation:  req.Estimation,
		Archived:    req.Archived,
	}

	if err := s.repo.Update(ctx, proj); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return proj, nil
}

// Archive marks a project as archived.
func (s *Service) Archive(ctx context.Context, id string) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	proj.Archived = true
	if err := s.repo.Update(ctx, proj); err != nil {
		return nil, fmt.Errorf("archiving project: %w", err)
	}
	return proj, nil
}

// List returns projects filtered by archived status.
func (s *Service) List(ctx context.Context, archived bool) ([]Project, error) {
	projects, err := s.repo.List(ctx, archived)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}
