package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/mindlab/internal/domain/period"
	"github.com/okian/mindlab/internal/domain/types"
)

// ReportDependencies defines the interface for document export.
type ReportDependencies interface {
	Report(ctx context.Context, sel period.Selector) (types.Document, error)
}

// ReportHandler handles report downloads.
type ReportHandler struct {
	deps          ReportDependencies
	defaultPeriod period.Selector
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies, defaultPeriod period.Selector) *ReportHandler {
	return &ReportHandler{deps: deps, defaultPeriod: defaultPeriod}
}

// HandleGetReport handles GET /report?period=P requests.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	doc, err := h.deps.Report(r.Context(), selector(r, h.defaultPeriod))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Bytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Bytes)
}
