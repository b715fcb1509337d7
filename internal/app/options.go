package service

import (
	"time"

	"github.com/okian/mindlab/internal/adapters/repository"
	"github.com/okian/mindlab/internal/domain/dedupe"
	"github.com/okian/mindlab/internal/domain/report"
	"github.com/okian/mindlab/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBackendName labels the store in stats.
func WithBackendName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.backend = name
		}
	}
}

// WithDeduper sets the submission duplicate guard.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Service) {
		if d != nil {
			s.deduper = d
		}
	}
}

// WithReportBuilder sets the document builder.
func WithReportBuilder(b *report.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.reports = b
		}
	}
}

// WithClock sets the source of "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPassphrase gates every operation behind an unlocked session. Empty
// disables the gate.
func WithPassphrase(passphrase string) Option {
	return func(s *Service) {
		s.passphrase = passphrase
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
