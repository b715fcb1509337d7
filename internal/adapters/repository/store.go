package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/okian/mindlab/internal/domain/model"
	"github.com/okian/mindlab/pkg/logger"
	"github.com/okian/mindlab/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultCacheTTL = 3 * time.Second
	loadCacheKey    = "records"
)

// Store provides typed access to persisted journal records.
type Store interface {
	// Load returns every record whose date parses, in stored order. An empty
	// store yields an empty, non-nil slice. Failures wrap ErrStoreRead.
	Load(ctx context.Context) ([]model.Record, error)

	// Append persists rec by rewriting the whole collection. On failure the
	// store is unchanged and the error wraps ErrStoreWrite.
	Append(ctx context.Context, rec model.Record) error
}

// SheetStore adapts a Sheet collaborator into a Store with a short-lived
// Load cache.
type SheetStore struct {
	sheet    Sheet
	cacheTTL time.Duration
	location *time.Location
	logger   logger.Logger

	loads   *cache.Cache // nil when caching is disabled
	cacheMu sync.Mutex   // guards gen and the cache entry together
	gen     uint64       // bumped by every Invalidate
	mu      sync.Mutex   // serializes appends from this process
}

// NewSheetStore creates a store over sheet.
func NewSheetStore(sheet Sheet, opts ...Option) *SheetStore {
	s := &SheetStore{
		sheet:    sheet,
		cacheTTL: defaultCacheTTL,
		location: time.Local,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cacheTTL > 0 {
		s.loads = cache.New(s.cacheTTL, 2*s.cacheTTL)
	}
	return s
}

// Load implements Store.
func (s *SheetStore) Load(ctx context.Context) ([]model.Record, error) {
	if s.loads != nil {
		if v, ok := s.loads.Get(loadCacheKey); ok {
			metrics.RecordCacheHit()
			return cloneRecords(v.([]model.Record)), nil
		}
		metrics.RecordCacheMiss()
	}
	gen := s.generation()

	start := time.Now()
	rows, err := s.sheet.ReadAll(ctx)
	metrics.RecordStoreReadLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordStoreReadError()
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}

	records, dropped, err := decodeRows(rows, s.location)
	if err != nil {
		metrics.RecordStoreReadError()
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	if dropped > 0 {
		metrics.RecordRowsDropped(dropped)
		s.logger.Warn(ctx, "dropped unreadable sheet rows", logger.Int("dropped", dropped))
	}
	metrics.UpdateRecordsLoaded(len(records))

	s.remember(gen, records)
	return records, nil
}

// Append implements Store. Existing rows are written back verbatim, including
// rows Load would drop.
func (s *SheetStore) Append(ctx context.Context, rec model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	defer func() {
		metrics.RecordStoreWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	rows, err := s.sheet.ReadAll(ctx)
	if err != nil {
		return s.writeFailed(ctx, err)
	}

	var l layout
	if isEmptySheet(rows) {
		rows = [][]string{append([]string(nil), Header...)}
		l = canonicalLayout()
	} else {
		l, err = parseHeader(rows[0])
		if err != nil {
			return s.writeFailed(ctx, err)
		}
	}

	header := rows[0]
	if l[colNotes] < 0 {
		header = append(append([]string(nil), header...), Header[colNotes])
		l[colNotes] = len(header) - 1
	}

	next := make([][]string, 0, len(rows)+1)
	next = append(next, header)
	next = append(next, rows[1:]...)
	next = append(next, encodeRow(l, len(header), rec, s.location))

	if err := s.sheet.WriteAll(ctx, next); err != nil {
		return s.writeFailed(ctx, err)
	}

	s.Invalidate()
	metrics.RecordRecordAppended()
	s.logger.Debug(ctx, "record appended", logger.String("venue", rec.Venue), logger.Int("rows", len(next)-1))
	return nil
}

// Invalidate drops any cached Load result. A Load that read the sheet before
// the call will not cache what it read.
func (s *SheetStore) Invalidate() {
	if s.loads == nil {
		return
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.gen++
	s.loads.Delete(loadCacheKey)
}

func (s *SheetStore) generation() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.gen
}

// remember caches records read at generation gen unless an Invalidate has
// happened since.
func (s *SheetStore) remember(gen uint64, records []model.Record) {
	if s.loads == nil {
		return
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.gen != gen {
		return
	}
	s.loads.Set(loadCacheKey, cloneRecords(records), cache.DefaultExpiration)
}

// CacheTTL returns the configured Load cache lifetime.
func (s *SheetStore) CacheTTL() time.Duration { return s.cacheTTL }

func (s *SheetStore) writeFailed(ctx context.Context, err error) error {
	metrics.RecordStoreWriteError()
	s.logger.Error(ctx, "append failed; store left unchanged", logger.Error(err))
	return fmt.Errorf("%w: %w", ErrStoreWrite, err)
}

func cloneRecords(in []model.Record) []model.Record {
	out := make([]model.Record, len(in))
	copy(out, in)
	return out
}
