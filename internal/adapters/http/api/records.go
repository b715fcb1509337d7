package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/mindlab/internal/domain/model"
	"github.com/okian/mindlab/internal/domain/period"
	"github.com/okian/mindlab/internal/domain/types"
)

// maxRecordBody caps POST /records payloads.
const maxRecordBody = 64 << 10

// RecordDependencies defines the interface for journal entry operations.
type RecordDependencies interface {
	Submit(ctx context.Context, rec model.Record, submissionID string) (types.Receipt, error)
	History(ctx context.Context, sel period.Selector) ([]types.Entry, error)
}

// RecordsHandler handles /records requests.
type RecordsHandler struct {
	deps          RecordDependencies
	defaultPeriod period.Selector
	location      *time.Location
}

// NewRecordsHandler creates a new records handler. Submitted dates without
// an offset are read in loc.
func NewRecordsHandler(deps RecordDependencies, defaultPeriod period.Selector, loc *time.Location) *RecordsHandler {
	if loc == nil {
		loc = time.Local
	}
	return &RecordsHandler{deps: deps, defaultPeriod: defaultPeriod, location: loc}
}

// HandleRecords dispatches POST (submit) and GET (history) requests.
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleGet(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *RecordsHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_record"
	var req recordRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRecordBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	rec, err := req.toRecord(h.location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	receipt, err := h.deps.Submit(r.Context(), rec, strings.TrimSpace(req.SubmissionID))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	status := http.StatusCreated
	if receipt.Duplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, receipt)
}

func (h *RecordsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_records"
	sel := selector(r, h.defaultPeriod)
	entries, err := h.deps.History(r.Context(), sel)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Period: string(sel), Label: sel.Label(), Entries: entries})
}

type historyResponse struct {
	Period  string        `json:"period"`
	Label   string        `json:"label"`
	Entries []types.Entry `json:"entries"`
}

// recordRequest mirrors the OpenAPI schema for POST /records. Omitted
// ratings take the mid-scale default.
type recordRequest struct {
	Date         string `json:"date"`
	Venue        string `json:"venue"`
	Score        *int   `json:"score"`
	Acceptance   *int   `json:"acceptance"`
	Routine      *int   `json:"routine"`
	Decision     *int   `json:"decision"`
	Focus        *int   `json:"focus"`
	Energy       *int   `json:"energy"`
	Tension      *int   `json:"tension"`
	Notes        string `json:"notes"`
	SubmissionID string `json:"submission_id"`
}

var requestDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func (q recordRequest) toRecord(loc *time.Location) (model.Record, error) {
	if q.Score == nil {
		return model.Record{}, errors.New("missing score")
	}
	rec := model.NewRecord(strings.TrimSpace(q.Venue), *q.Score)
	rec.Notes = q.Notes

	ratings := []struct {
		src *int
		dst *int
	}{
		{q.Acceptance, &rec.Acceptance},
		{q.Routine, &rec.Routine},
		{q.Decision, &rec.Decision},
		{q.Focus, &rec.Focus},
		{q.Energy, &rec.Energy},
		{q.Tension, &rec.Tension},
	}
	for _, r := range ratings {
		if r.src != nil {
			*r.dst = *r.src
		}
	}

	if d := strings.TrimSpace(q.Date); d != "" {
		ts, err := parseRequestDate(d, loc)
		if err != nil {
			return model.Record{}, err
		}
		rec.Timestamp = ts
	}
	return rec, nil
}

func parseRequestDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range requestDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date; use RFC3339 or YYYY-MM-DD")
}
