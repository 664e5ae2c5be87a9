package report

import (
	"context"
	"testing"
	"time"

	"github.com/ptrack/beats/internal/domain/beat"
	"github.com/ptrack/beats/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestService_WeekUsesInjectedClock(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.BeatRepository{}

	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	repo.On("ListByProject", ctx, "p1").Return([]beat.Beat{closed("b1", "p1", start, 2*time.Hour)}, nil)

	svc := NewService(repo, nil)
	svc.now = func() time.Time { return time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC) }

	bd, err := svc.Week(ctx, "p1", WeekOptions{})
	require.NoError(t, err)
	require.Equal(t, 2*time.Hour, bd.Days["Monday"])
	require.Equal(t, 2.0, bd.TotalHours)
}

func TestService_DailyAndMonthly(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.BeatRepository{}

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	repo.On("ListByProject", ctx, "p1").Return([]beat.Beat{closed("b1", "p1", start, 2*time.Hour)}, nil)

	svc := NewService(repo, nil)

	daily, err := svc.Daily(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 2*time.Hour, daily["2024-03-01"])

	monthly, err := svc.Monthly(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"2024-03": 2.0}, monthly.Months)
	require.Equal(t, 120, monthly.TotalMinutes)
}

func TestService_UnknownProjectYieldsEmptyReports(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.BeatRepository{}
	repo.On("ListByProject", ctx, "ghost").Return([]beat.Beat{}, nil)

	svc := NewService(repo, nil)

	daily, err := svc.Daily(ctx, "ghost")
	require.NoError(t, err)
	require.Empty(t, daily)

	monthly, err := svc.Monthly(ctx, "ghost")
	require.NoError(t, err)
	require.Empty(t, monthly.Months)
	require.Equal(t, 0, monthly.TotalMinutes)
}
