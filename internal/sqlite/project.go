package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ptrack/beats/internal/domain/project"
	"github.com/ptrack/beats/internal/repository"
	"github.com/ptrack/beats/internal/storage"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project, assigning an ID if the caller left it empty.
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	if proj.ID == "" {
		proj.ID = uuid.NewString()
	}

	query := `
		INSERT INTO projects (id, name, description, estimation, archived)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.Description,
		proj.Estimation,
		proj.Archived,
	)

	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, name, description, estimation, archived
		FROM projects
		WHERE id = ?
	`

	var proj project.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&proj.ID,
		&proj.Name,
		&proj.Description,
		&proj.Estimation,
		&proj.Archived,
	)

	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &proj, nil
}

// Exists reports whether a project with the given ID exists
func (r *ProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check project existence: %w", err)
	}
	return true, nil
}

// Update replaces a project's fields
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	query := `
		UPDATE projects
		SET name = ?, description = ?, estimation = ?, archived = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.Name,
		proj.Description,
		proj.Estimation,
		proj.Archived,
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// List returns projects filtered by archived status, newest first
func (r *ProjectRepository) List(ctx context.Context, archived bool) ([]project.Project, error) {
	query := `
		SELECT id, name, description, estimation, archived
		FROM projects
		WHERE archived = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, archived)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		var proj project.Project
		err := rows.Scan(
			&proj.ID,
			&proj.Name,
			&proj.Description,
			&proj.Estimation,
			&proj.Archived,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}
