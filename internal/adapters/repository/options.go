// Package repository adapts the spreadsheet collaborator into typed journal records.
package repository

import (
	"time"

	"github.com/okian/mindlab/pkg/logger"
)

// Option applies a configuration option to the SheetStore.
type Option func(*SheetStore)

// WithCacheTTL sets how long Load results are reused. Zero or negative
// disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *SheetStore) {
		s.cacheTTL = ttl
	}
}

// WithLocation sets the zone used to read and write sheet dates.
func WithLocation(loc *time.Location) Option {
	return func(s *SheetStore) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *SheetStore) {
		if l != nil {
			s.logger = l
		}
	}
}
