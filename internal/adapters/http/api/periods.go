package api

import (
	"net/http"

	"github.com/okian/mindlab/internal/domain/types"
)

// PeriodDependencies lists the selectable periods.
type PeriodDependencies interface {
	Periods() []types.PeriodOption
}

// PeriodsHandler handles period listing requests.
type PeriodsHandler struct {
	deps PeriodDependencies
}

// NewPeriodsHandler creates a new periods handler.
func NewPeriodsHandler(deps PeriodDependencies) *PeriodsHandler {
	return &PeriodsHandler{deps: deps}
}

// HandleGetPeriods handles GET /periods requests.
func (h *PeriodsHandler) HandleGetPeriods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Periods())
}
