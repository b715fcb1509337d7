// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/okian/mindlab/internal/adapters/repository"
	service "github.com/okian/mindlab/internal/app"
	"github.com/okian/mindlab/internal/domain/model"
	"github.com/okian/mindlab/internal/domain/period"
	"github.com/okian/mindlab/internal/domain/report"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RecordDependencies
	AnalysisDependencies
	ReportDependencies
	PeriodDependencies
	SessionDependencies
}

// Server wires HTTP routes for the journal API.
type Server struct {
	recordsHandler   *RecordsHandler
	analysisHandler  *AnalysisHandler
	reportHandler    *ReportHandler
	periodsHandler   *PeriodsHandler
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *dashboardHandler
	gate             SessionDependencies
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	location *time.Location
}

// WithLocation sets the zone used for submitted dates that carry no offset.
// Defaults to time.Local.
func WithLocation(loc *time.Location) ServerOption {
	return func(c *serverConfig) {
		if loc != nil {
			c.location = loc
		}
	}
}

// NewServer creates a new API server with all handlers. defaultPeriod is
// used when a request names no period.
func NewServer(deps Dependencies, statsProvider StatsProvider, defaultPeriod period.Selector, opts ...ServerOption) *Server {
	cfg := serverConfig{location: time.Local}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		recordsHandler:   NewRecordsHandler(deps, defaultPeriod, cfg.location),
		analysisHandler:  NewAnalysisHandler(deps, defaultPeriod),
		reportHandler:    NewReportHandler(deps, defaultPeriod),
		periodsHandler:   NewPeriodsHandler(deps),
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: newDashboardHandler(),
		gate:             deps,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	wrap := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return RequestIDMiddleware(MetricsMiddleware(SessionMiddleware(h, s.gate), endpoint))
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/periods", wrap(s.periodsHandler.HandleGetPeriods, "periods"))
	mux.HandleFunc("/records", wrap(s.recordsHandler.HandleRecords, "records"))
	mux.HandleFunc("/analysis", wrap(s.analysisHandler.HandleGetAnalysis, "analysis"))
	mux.HandleFunc("/report", wrap(s.reportHandler.HandleGetReport, "report"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps service errors onto status codes. Every failure is
// reported to the caller; none ends the process.
func writeFailure(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_failed", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrSubmissionInFlight):
		writeError(w, http.StatusConflict, "in_flight", Wrap(op, err))
	case errors.Is(err, service.ErrLocked):
		writeError(w, http.StatusUnauthorized, "locked", Wrap(op, err))
	case errors.Is(err, repository.ErrStoreRead), errors.Is(err, repository.ErrStoreWrite):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", WrapKind(op, ErrUnavailable, err))
	case errors.Is(err, report.ErrReportGeneration):
		writeError(w, http.StatusInternalServerError, "report_failed", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// selector reads ?period=, falling back to def when absent.
func selector(r *http.Request, def period.Selector) period.Selector {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return def
	}
	return period.Parse(raw)
}
