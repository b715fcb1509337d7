// Package service wires the journal pipeline: store, window filter,
// aggregation, chart and report.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/mindlab/internal/adapters/repository"
	"github.com/okian/mindlab/internal/domain/aggregate"
	"github.com/okian/mindlab/internal/domain/chart"
	"github.com/okian/mindlab/internal/domain/dedupe"
	"github.com/okian/mindlab/internal/domain/model"
	"github.com/okian/mindlab/internal/domain/period"
	"github.com/okian/mindlab/internal/domain/report"
	"github.com/okian/mindlab/internal/domain/types"
	"github.com/okian/mindlab/pkg/logger"
	"github.com/okian/mindlab/pkg/metrics"
)

// displayPlaces is the rounding applied to presented means.
const displayPlaces = 1

// Service implements the API dependencies for the journal.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	deduper dedupe.Deduper
	reports *report.Builder
	now     func() time.Time

	backend    string
	passphrase string

	started bool
	logger  logger.Logger
}

// New constructs a Service. Without options it runs on an in-memory sheet.
func New(opts ...Option) *Service {
	s := &Service{
		backend: repository.BackendMemory,
		now:     time.Now,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewSheetStore(repository.NewMemorySheet(), repository.WithLogger(s.logger))
	}
	if s.deduper == nil {
		s.deduper = dedupe.NewInMemoryDeduper()
	}
	if s.reports == nil {
		s.reports = report.NewBuilder()
	}
	return s
}

// Start marks the service ready and warms the store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting journal service...", logger.String("backend", s.backend))

	records, err := s.store.Load(ctx)
	if err != nil {
		// The store may come back later; every call retries.
		s.logger.Warn(ctx, "store unavailable at startup", logger.Error(err))
	}

	s.started = true
	s.logger.Info(ctx, "journal service started",
		logger.Int("records", len(records)),
		logger.Bool("locked", s.Locked()),
	)
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "journal service stopped")
}

// Submit validates rec and appends it. The venue is trimmed and a zero
// timestamp is stamped with the current time. A non-empty submissionID
// already accepted within the dedupe window is acknowledged as a duplicate
// without a second append; one still being saved fails with
// ErrSubmissionInFlight.
func (s *Service) Submit(ctx context.Context, rec model.Record, submissionID string) (types.Receipt, error) {
	if err := s.authorize(ctx); err != nil {
		return types.Receipt{}, err
	}
	rec.Venue = strings.TrimSpace(rec.Venue)
	if err := rec.Validate(); err != nil {
		metrics.RecordSubmissionRejected("validation")
		s.logger.Warn(ctx, "submission rejected", logger.Error(err))
		return types.Receipt{}, err
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now()
	}

	receipt := types.Receipt{SubmissionID: submissionID, Entry: types.EntryFrom(rec)}
	switch s.deduper.Reserve(ctx, submissionID) {
	case dedupe.Accepted:
		metrics.RecordSubmissionDuplicate()
		s.logger.Debug(ctx, "duplicate submission ignored", logger.String("submission_id", submissionID))
		receipt.Duplicate = true
		return receipt, nil
	case dedupe.InFlight:
		metrics.RecordSubmissionRejected("in_flight")
		return types.Receipt{}, fmt.Errorf("%w: %s", ErrSubmissionInFlight, submissionID)
	}

	if err := s.store.Append(ctx, rec); err != nil {
		s.deduper.Unrecord(ctx, submissionID)
		metrics.RecordSubmissionRejected("store")
		metrics.RecordErrorByComponent("repository", "store_write")
		return types.Receipt{}, err
	}
	s.deduper.Confirm(ctx, submissionID)

	s.logger.Info(ctx, "record saved",
		logger.String("venue", rec.Venue),
		logger.Int("score", rec.Score),
		logger.String("submission_id", submissionID),
	)
	return receipt, nil
}

// subset loads the store and applies the window for sel.
func (s *Service) subset(ctx context.Context, sel period.Selector) ([]model.Record, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "store_read")
		return nil, err
	}
	return period.Filter(records, period.Window(sel, s.now())), nil
}

// Analyze aggregates the records inside sel. An empty window returns an
// Analysis marked Empty without aggregating.
func (s *Service) Analyze(ctx context.Context, sel period.Selector) (types.Analysis, error) {
	if err := s.authorize(ctx); err != nil {
		return types.Analysis{}, err
	}
	subset, err := s.subset(ctx, sel)
	if err != nil {
		return types.Analysis{}, err
	}

	out := types.Analysis{Period: string(sel), Label: sel.Label(), Count: len(subset)}
	if since, ok := sel.Since(s.now()); ok {
		out.Since = &since
	}
	if len(subset) == 0 {
		out.Empty = true
		metrics.RecordAnalysisRender(string(sel), true)
		return out, nil
	}

	profile, err := aggregate.Aggregate(subset, model.AllSkills())
	if err != nil {
		return types.Analysis{}, fmt.Errorf("aggregate %s: %w", sel, err)
	}
	for _, skill := range profile.Skills {
		mean, _ := profile.Mean(skill)
		out.Skills = append(out.Skills, types.SkillMean{
			Skill:   string(skill),
			Mean:    mean,
			Display: aggregate.Round(mean, displayPlaces),
		})
	}
	radar := chart.Build(profile, sel.Label())
	out.Radar = &radar

	metrics.RecordAnalysisRender(string(sel), false)
	return out, nil
}

// History returns the records inside sel, newest first.
func (s *Service) History(ctx context.Context, sel period.Selector) ([]types.Entry, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}
	subset, err := s.subset(ctx, sel)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(subset, func(i, j int) bool {
		return subset[i].Timestamp.After(subset[j].Timestamp)
	})
	out := make([]types.Entry, len(subset))
	for i, r := range subset {
		out[i] = types.EntryFrom(r)
	}
	return out, nil
}

// Report renders the records inside sel, in stored order, as a PDF.
func (s *Service) Report(ctx context.Context, sel period.Selector) (types.Document, error) {
	if err := s.authorize(ctx); err != nil {
		return types.Document{}, err
	}
	subset, err := s.subset(ctx, sel)
	if err != nil {
		return types.Document{}, err
	}

	start := time.Now()
	body, err := s.reports.Build(subset, sel.Label(), s.now())
	if err != nil {
		metrics.RecordReportFailed()
		metrics.RecordErrorLatency("report", "generation", float64(time.Since(start).Milliseconds()))
		s.logger.Error(ctx, "report generation failed", logger.String("period", string(sel)), logger.Error(err))
		return types.Document{}, err
	}
	metrics.RecordReportGenerated(float64(time.Since(start).Milliseconds()), len(body))

	return types.Document{
		FileName:    report.FileName(sel.Label()),
		ContentType: report.ContentType,
		Bytes:       body,
	}, nil
}

// Periods lists the selectable periods in UI order.
func (s *Service) Periods() []types.PeriodOption {
	all := period.All()
	out := make([]types.PeriodOption, len(all))
	for i, p := range all {
		days, _ := p.LookbackDays()
		out[i] = types.PeriodOption{Token: string(p), Label: p.Label(), Days: days}
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"backend":    s.backend,
		"locked":     s.Locked(),
		"dedupeSize": s.deduper.Size(),
	}
	if ttl, ok := s.store.(interface{ CacheTTL() time.Duration }); ok {
		stats["cacheTTLMs"] = ttl.CacheTTL().Milliseconds()
	}

	if records, err := s.store.Load(context.Background()); err != nil {
		stats["storeError"] = err.Error()
	} else {
		stats["records"] = len(records)
	}
	return stats
}
