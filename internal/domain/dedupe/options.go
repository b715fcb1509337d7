package dedupe

import "time"

// Option applies a configuration option to the deduper.
type Option func(*ttlDeduper)

// WithTTL sets how long a submission ID is remembered.
func WithTTL(ttl time.Duration) Option {
	return func(d *ttlDeduper) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

// WithCleanupInterval sets how often expired IDs are purged.
func WithCleanupInterval(interval time.Duration) Option {
	return func(d *ttlDeduper) {
		if interval > 0 {
			d.cleanupInterval = interval
		}
	}
}
