// Package dedupe guards journal submissions against double posting.
package dedupe

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Default deduper configuration constants.
const (
	defaultTTL             = 10 * time.Minute
	defaultCleanupInterval = 20 * time.Minute
)

// State is what a deduper knows about a submission ID.
type State int

const (
	// Fresh means the ID was unknown and is now reserved by the caller.
	Fresh State = iota
	// InFlight means another caller reserved the ID and has not confirmed it.
	InFlight
	// Accepted means the ID was confirmed within the window.
	Accepted
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case InFlight:
		return "in_flight"
	case Accepted:
		return "accepted"
	}
	return "unknown"
}

// Deduper records seen submission IDs so a re-posted form is saved once.
type Deduper interface {
	// Reserve atomically claims id. Fresh means the caller owns it and must
	// either Confirm or Unrecord it. An empty id is never recorded and is
	// always Fresh.
	Reserve(ctx context.Context, id string) State

	// Confirm marks a reserved id as accepted.
	Confirm(ctx context.Context, id string)

	// Unrecord forgets id so a failed submission can be retried.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// ttlDeduper remembers IDs for a bounded time window.
type ttlDeduper struct {
	ttl             time.Duration
	cleanupInterval time.Duration
	seen            *cache.Cache
}

// NewInMemoryDeduper creates a TTL-bounded deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &ttlDeduper{
		ttl:             defaultTTL,
		cleanupInterval: defaultCleanupInterval,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = cache.New(d.ttl, d.cleanupInterval)
	return d
}

func (d *ttlDeduper) Reserve(_ context.Context, id string) State {
	if id == "" {
		return Fresh
	}
	for {
		// Add fails when a live entry exists.
		if d.seen.Add(id, InFlight, cache.DefaultExpiration) == nil {
			return Fresh
		}
		if v, ok := d.seen.Get(id); ok {
			return v.(State)
		}
		// Released or expired between Add and Get.
	}
}

func (d *ttlDeduper) Confirm(_ context.Context, id string) {
	if id == "" {
		return
	}
	d.seen.Set(id, Accepted, cache.DefaultExpiration)
}

func (d *ttlDeduper) Unrecord(_ context.Context, id string) {
	d.seen.Delete(id)
}

// Size returns the number of tracked IDs, including expired ones not yet
// cleaned up.
func (d *ttlDeduper) Size() int64 {
	return int64(d.seen.ItemCount())
}
