package api

import (
	"context"
	"net/http"

	"github.com/okian/mindlab/internal/domain/period"
	"github.com/okian/mindlab/internal/domain/types"
)

// AnalysisDependencies defines the interface for period analysis.
type AnalysisDependencies interface {
	Analyze(ctx context.Context, sel period.Selector) (types.Analysis, error)
}

// AnalysisHandler handles analysis requests.
type AnalysisHandler struct {
	deps          AnalysisDependencies
	defaultPeriod period.Selector
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(deps AnalysisDependencies, defaultPeriod period.Selector) *AnalysisHandler {
	return &AnalysisHandler{deps: deps, defaultPeriod: defaultPeriod}
}

// HandleGetAnalysis handles GET /analysis?period=P requests. Unknown periods
// resolve to all time.
func (h *AnalysisHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_analysis"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	analysis, err := h.deps.Analyze(r.Context(), selector(r, h.defaultPeriod))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
