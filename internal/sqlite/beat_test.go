package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ptrack/beats/internal/domain/beat"
	"github.com/ptrack/beats/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestBeatRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "backmarket")

	repo := NewBeatRepository(db)
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	b := &beat.Beat{ProjectID: "p1", Start: start}

	require.NoError(t, repo.Create(ctx, b))
	require.NotEmpty(t, b.ID)

	loaded, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "p1", loaded.ProjectID)
	require.True(t, loaded.Start.Equal(start))
	require.Nil(t, loaded.End)
	require.True(t, loaded.IsActive())
}

func TestBeatRepository_GetByIDNotFound(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewBeatRepository(db)
	_, err := repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBeatRepository_SingleActiveConstraint(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "backmarket")
	insertProject(t, db, "p2", "refurbs")

	repo := NewBeatRepository(db)
	first := &beat.Beat{ProjectID: "p1", Start: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, first))

	// A second open beat is refused by the store itself, even for another
	// project.
	second := &beat.Beat{ProjectID: "p2", Start: time.Now().UTC()}
	err := repo.Create(ctx, second)
	require.ErrorIs(t, err, storage.ErrActiveBeatExists)

	// Closed beats are unaffected.
	start := time.Now().UTC().Add(-2 * time.Hour)
	end := start.Add(time.Hour)
	closed := &beat.Beat{ProjectID: "p2", Start: start, End: &end}
	require.NoError(t, repo.Create(ctx, closed))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.Equal(t, first.ID, active.ID)
}

func TestBeatRepository_GetActiveNone(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewBeatRepository(db)
	_, err := repo.GetActive(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBeatRepository_UpdateClosesBeat(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "backmarket")

	repo := NewBeatRepository(db)
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	b := &beat.Beat{ProjectID: "p1", Start: start}
	require.NoError(t, repo.Create(ctx, b))

	end := start.Add(2 * time.Hour)
	b.End = &end
	require.NoError(t, repo.Update(ctx, b))

	loaded, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.False(t, loaded.IsActive())
	require.Equal(t, 2*time.Hour, loaded.Duration())

	_, err = repo.GetActive(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBeatRepository_GetLast(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "backmarket")

	repo := NewBeatRepository(db)
	_, err := repo.GetLast(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound)

	old := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	oldEnd := old.Add(time.Hour)
	recent := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	recentEnd := recent.Add(time.Hour)
	require.NoError(t, repo.Create(ctx, &beat.Beat{ProjectID: "p1", Start: old, End: &oldEnd}))
	require.NoError(t, repo.Create(ctx, &beat.Beat{ProjectID: "p1", Start: recent, End: &recentEnd}))

	last, err := repo.GetLast(ctx)
	require.NoError(t, err)
	require.True(t, last.Start.Equal(recent))
}

func TestBeatRepository_GetLastSubsecondOrdering(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "backmarket")

	repo := NewBeatRepository(db)

	// A whole-second start and a later start within the same second. The
	// stored text must sort chronologically despite the fractional part.
	whole := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	wholeEnd := whole.Add(time.Hour)
	later := whole.Add(500 * time.Millisecond)
	laterEnd := later.Add(time.Hour)

	require.NoError(t, repo.Create(ctx, &beat.Beat{ID: "a", ProjectID: "p1", Start: whole, End: &wholeEnd}))
	require.NoError(t, repo.Create(ctx, &beat.Beat{ID: "b", ProjectID: "p1", Start: later, End: &laterEnd}))

	last, err := repo.GetLast(ctx)
	require.NoError(t, err)
	require.Equal(t, "b", last.ID)
	require.True(t, last.Start.Equal(later))
}

func TestBeatRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "backmarket")
	insertProject(t, db, "p2", "refurbs")

	repo := NewBeatRepository(db)
	jan15 := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	jan16 := time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)
	for _, b := range []*beat.Beat{
		{ProjectID: "p1", Start: jan15, End: timePtr(jan15.Add(time.Hour))},
		{ProjectID: "p1", Start: jan16, End: timePtr(jan16.Add(time.Hour))},
		{ProjectID: "p2", Start: jan15.Add(3 * time.Hour), End: timePtr(jan15.Add(4 * time.Hour))},
	} {
		require.NoError(t, repo.Create(ctx, b))
	}

	all, err := repo.List(ctx, beat.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	byProject, err := repo.List(ctx, beat.ListOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, byProject, 2)

	day := jan15
	byDay, err := repo.List(ctx, beat.ListOptions{Day: &day})
	require.NoError(t, err)
	require.Len(t, byDay, 2)

	both, err := repo.List(ctx, beat.ListOptions{ProjectID: "p1", Day: &day})
	require.NoError(t, err)
	require.Len(t, both, 1)

	p1, err := repo.ListByProject(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, p1, 2)
	require.True(t, p1[0].Start.Before(p1[1].Start))
}

func TestBeatRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "backmarket")

	repo := NewBeatRepository(db)
	start := time.Now().UTC().Add(-time.Hour)
	end := start.Add(time.Hour)
	b := &beat.Beat{ProjectID: "p1", Start: start, End: &end}
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.Delete(ctx, b.ID))
	require.ErrorIs(t, repo.Delete(ctx, b.ID), storage.ErrNotFound)
}

func TestBeatRepository_CreateUnknownProject(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewBeatRepository(db)
	start := time.Now().UTC().Add(-time.Hour)
	end := start.Add(time.Hour)
	err := repo.Create(ctx, &beat.Beat{ProjectID: "ghost", Start: start, End: &end})
	require.ErrorIs(t, err, storage.ErrForeignKeyViolation)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
