// Package transport exposes the REST API over the domain services. It maps
// the domain error taxonomy onto HTTP status codes and keeps all
// request/response shaping out of the services.
package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ptrack/beats/internal/domain/beat"
	"github.com/ptrack/beats/internal/domain/project"
	"github.com/ptrack/beats/internal/domain/report"
	"github.com/ptrack/beats/internal/domain/timer"
	"github.com/ptrack/beats/internal/metrics"
	"github.com/ptrack/beats/internal/storage"
	"github.com/ptrack/beats/internal/timeutil"
)

// Server wires HTTP handlers over the domain services.
type Server struct {
	projects *project.Service
	beats    *beat.Service
	timer    *timer.Service
	reports  *report.Service
	logger   *slog.Logger
}

// NewServer creates the API router.
func NewServer(
	projects *project.Service,
	beats *beat.Service,
	timerSvc *timer.Service,
	reports *report.Service,
	logger *slog.Logger,
) *chi.Mux {
	srv := &Server{
		projects: projects,
		beats:    beats,
		timer:    timerSvc,
		reports:  reports,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(requestMetrics(logger))

	r.Get("/health", srv.handleHealth)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", srv.handleListProjects)
			r.Post("/", srv.handleCreateProject)
			r.Put("/", srv.handleUpdateProject)
			r.Post("/stop", srv.handleStopTimer)
			r.Post("/{projectID}/archive", srv.handleArchiveProject)
			r.Post("/{projectID}/start", srv.handleStartTimer)
			r.Get("/{projectID}/today/", srv.handleToday)
			r.Get("/{projectID}/week/", srv.handleWeek)
			r.Get("/{projectID}/total/", srv.handleMonthly)
			r.Get("/{projectID}/summary/", srv.handleDaily)
		})
		r.Route("/beats", func(r chi.Router) {
			r.Get("/", srv.handleListBeats)
			r.Post("/", srv.handleCreateBeat)
			r.Put("/", srv.handleUpdateBeat)
			r.Get("/{beatID}", srv.handleGetBeat)
			r.Delete("/{beatID}", srv.handleDeleteBeat)
		})
		r.Get("/timer/status", srv.handleTimerStatus)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Projects

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	archived, err := parseBoolQuery(r, "archived")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	projects, err := s.projects.List(r.Context(), archived)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	proj, err := s.projects.Create(r.Context(), project.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		Estimation:  req.Estimation,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	proj, err := s.projects.Update(r.Context(), project.UpdateRequest{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Estimation:  req.Estimation,
		Archived:    req.Archived,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleArchiveProject(w http.ResponseWriter, r *http.Request) {
	if _, err := s.projects.Archive(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Reports

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	d, err := s.reports.Today(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, durationResponse{Duration: timeutil.FormatDuration(d)})
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	weeksAgo, err := parseIntQuery(r, "weeks_ago")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	detail, err := parseBoolQuery(r, "display_each_log_duration")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	bd, err := s.reports.Week(r.Context(), chi.URLParam(r, "projectID"), report.WeekOptions{
		WeeksAgo:      weeksAgo,
		IncludeDetail: detail,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toWeekResponse(bd))
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	mt, err := s.reports.Monthly(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, monthlyTotalsResponse{
		DurationsPerMonth: mt.Months,
		TotalMinutes:      mt.TotalMinutes,
		Warnings:          mt.Warnings,
	})
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	days, err := s.reports.Daily(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toDailyResponse(days))
}

// Timer

func (s *Server) handleStartTimer(w http.ResponseWriter, r *http.Request) {
	at, err := decodeRecordTime(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	b, err := s.timer.Start(r.Context(), chi.URLParam(r, "projectID"), at)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toBeatResponse(b))
}

func (s *Server) handleStopTimer(w http.ResponseWriter, r *http.Request) {
	at, err := decodeRecordTime(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	b, err := s.timer.Stop(r.Context(), at)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toBeatResponse(b))
}

func (s *Server) handleTimerStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.timer.Status(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toStatusResponse(st))
}

// Beats

func (s *Server) handleCreateBeat(w http.ResponseWriter, r *http.Request) {
	var req createBeatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	start, err := parseOptionalTime(req.Start)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	end, err := parseOptionalTime(req.End)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	b, err := s.beats.Create(r.Context(), beat.CreateRequest{
		ProjectID: req.ProjectID,
		Start:     start,
		End:       end,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toBeatResponse(b))
}

func (s *Server) handleListBeats(w http.ResponseWriter, r *http.Request) {
	opts := beat.ListOptions{ProjectID: r.URL.Query().Get("project_id")}
	if raw := r.URL.Query().Get("date_filter"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.New("date_filter must be YYYY-MM-DD"))
			return
		}
		opts.Day = &day
	}

	list, err := s.beats.List(r.Context(), opts)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := make([]beatResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toBeatResponse(&list[i]))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBeat(w http.ResponseWriter, r *http.Request) {
	b, err := s.beats.Get(r.Context(), chi.URLParam(r, "beatID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toBeatResponse(b))
}

func (s *Server) handleUpdateBeat(w http.ResponseWriter, r *http.Request) {
	var req updateBeatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	start, err := timeutil.Parse(req.Start)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	end, err := parseOptionalTime(req.End)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	b, err := s.beats.Update(r.Context(), beat.UpdateRequest{
		ID:        req.ID,
		ProjectID: req.ProjectID,
		Start:     start,
		End:       end,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toBeatResponse(b))
}

func (s *Server) handleDeleteBeat(w http.ResponseWriter, r *http.Request) {
	if err := s.beats.Delete(r.Context(), chi.URLParam(r, "beatID")); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, deleteResponse{Deleted: true})
}

// Helpers

func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func decodeRecordTime(r *http.Request) (*time.Time, error) {
	var req recordTimeRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	return parseOptionalTime(req.Time)
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := timeutil.Parse(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseBoolQuery(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New(name + " must be a boolean")
	}
	return v, nil
}

func parseIntQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return v, nil
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, timer.ErrProjectNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, beat.ErrBeatNotFound),
		errors.Is(err, beat.ErrProjectNotFound),
		errors.Is(err, storage.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, timer.ErrTimerAlreadyRunning),
		errors.Is(err, timer.ErrNoActiveTimer),
		errors.Is(err, beat.ErrInvalidEndTime),
		errors.Is(err, beat.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, storage.ErrActiveBeatExists):
		s.writeError(w, http.StatusBadRequest, err)
	default:
		if s.logger != nil {
			s.logger.Error("request failed", "error", err)
		}
		s.writeError(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && s.logger != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
