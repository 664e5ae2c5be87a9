package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ptrack/beats/internal/domain/beat"
	"github.com/ptrack/beats/internal/repository"
	"github.com/ptrack/beats/internal/storage"
	"github.com/ptrack/beats/internal/timeutil"
)

// BeatRepository implements repository.BeatRepository for SQLite
type BeatRepository struct {
	db *DB
}

var _ repository.BeatRepository = (*BeatRepository)(nil)

// NewBeatRepository creates a new BeatRepository
func NewBeatRepository(db *DB) *BeatRepository {
	return &BeatRepository{db: db}
}

const beatColumns = "id, project_id, start_at, end_at"

// timeLayout keeps the fractional seconds fixed-width so that lexicographic
// order over the stored text matches chronological order. RFC3339Nano would
// trim trailing zeros and break ORDER BY on sub-second starts.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return timeutil.Normalize(t).Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBeat(row rowScanner) (*beat.Beat, error) {
	var b beat.Beat
	var startStr string
	var endStr sql.NullString
	if err := row.Scan(&b.ID, &b.ProjectID, &startStr, &endStr); err != nil {
		return nil, err
	}

	start, err := parseTime(startStr)
	if err != nil {
		return nil, err
	}
	b.Start = start

	if endStr.Valid {
		end, err := parseTime(endStr.String)
		if err != nil {
			return nil, err
		}
		b.End = &end
	}
	return &b, nil
}

// Create inserts a new beat, assigning an ID if the caller left it empty.
func (r *BeatRepository) Create(ctx context.Context, b *beat.Beat) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	var end any
	if b.End != nil {
		end = formatTime(*b.End)
	}

	query := `INSERT INTO beats (id, project_id, start_at, end_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, b.ID, b.ProjectID, formatTime(b.Start), end)
	if err != nil {
		if isActiveBeatViolation(err) {
			return storage.ErrActiveBeatExists
		}
		if isForeignKeyViolation(err) {
			return storage.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create beat: %w", err)
	}
	return nil
}

// GetByID retrieves a beat by ID
func (r *BeatRepository) GetByID(ctx context.Context, id string) (*beat.Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats WHERE id = ?`

	b, err := scanBeat(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get beat: %w", err)
	}
	return b, nil
}

// GetActive retrieves the single beat with no end time, if any
func (r *BeatRepository) GetActive(ctx context.Context) (*beat.Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats WHERE end_at IS NULL LIMIT 1`

	b, err := scanBeat(r.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active beat: %w", err)
	}
	return b, nil
}

// GetLast retrieves the most recent beat by start time
func (r *BeatRepository) GetLast(ctx context.Context) (*beat.Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats ORDER BY start_at DESC LIMIT 1`

	b, err := scanBeat(r.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last beat: %w", err)
	}
	return b, nil
}

// Update replaces a beat's fields
func (r *BeatRepository) Update(ctx context.Context, b *beat.Beat) error {
	var end any
	if b.End != nil {
		end = formatTime(*b.End)
	}

	query := `UPDATE beats SET project_id = ?, start_at = ?, end_at = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, b.ProjectID, formatTime(b.Start), end, b.ID)
	if err != nil {
		if isActiveBeatViolation(err) {
			return storage.ErrActiveBeatExists
		}
		return fmt.Errorf("failed to update beat: %w", err)
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

// Delete removes a beat by ID
func (r *BeatRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM beats WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete beat: %w", err)
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

// List returns beats matching the optional project and day filters
func (r *BeatRepository) List(ctx context.Context, opts beat.ListOptions) ([]beat.Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats WHERE 1=1`
	var args []any

	if opts.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, opts.ProjectID)
	}
	if opts.Day != nil {
		// start_at is RFC 3339 UTC text, so the first 10 bytes are the date.
		query += ` AND substr(start_at, 1, 10) = ?`
		args = append(args, timeutil.DayKey(*opts.Day))
	}
	query += ` ORDER BY start_at ASC`

	return r.queryBeats(ctx, query, args...)
}

// ListByProject returns all beats for a project ordered by start time
func (r *BeatRepository) ListByProject(ctx context.Context, projectID string) ([]beat.Beat, error) {
	query := `SELECT ` + beatColumns + ` FROM beats WHERE project_id = ? ORDER BY start_at ASC`
	return r.queryBeats(ctx, query, projectID)
}

func (r *BeatRepository) queryBeats(ctx context.Context, query string, args ...any) ([]beat.Beat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list beats: %w", err)
	}
	defer rows.Close()

	beats := []beat.Beat{}
	for rows.Next() {
		b, err := scanBeat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan beat: %w", err)
		}
		beats = append(beats, *b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating beat rows: %w", err)
	}
	return beats, nil
}
