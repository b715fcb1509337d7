package api

import (
	"net/http"
	"time"
)

// StatsProvider reports service counters for /stats.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves a snapshot of the service counters.
type StatsHandler struct {
	provider StatsProvider
	now      func() time.Time
}

// NewStatsHandler creates a stats handler over provider.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider, now: time.Now}
}

// HandleStats handles GET /stats. The snapshot carries the time it was taken.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	snapshot := make(map[string]interface{}, 8)
	for k, v := range h.provider.GetStats() {
		snapshot[k] = v
	}
	snapshot["snapshotAt"] = h.now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, snapshot)
}
