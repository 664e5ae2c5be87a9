// Package testserver provides a fully wired HTTP server over an in-memory
// database for integration tests.
package testserver

import (
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ptrack/beats/internal/domain/beat"
	"github.com/ptrack/beats/internal/domain/project"
	"github.com/ptrack/beats/internal/domain/report"
	"github.com/ptrack/beats/internal/domain/timer"
	"github.com/ptrack/beats/internal/sqlite"
	"github.com/ptrack/beats/internal/transport"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	beatRepo := sqlite.NewBeatRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)

	projectSvc := project.NewService(projectRepo, logger)
	beatSvc := beat.NewService(beatRepo, logger)
	timerSvc := timer.NewService(beatRepo, projectRepo, logger)
	reportSvc := report.NewService(beatRepo, logger)

	server := httptest.NewServer(transport.NewServer(projectSvc, beatSvc, timerSvc, reportSvc, logger))

	ts := &TestServer{Server: server, DB: db}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}
