// Package period maps named lookback windows to record predicates.
package period

import (
	"strings"
	"time"

	"github.com/okian/mindlab/internal/domain/model"
)

const day = 24 * time.Hour

// Selector names a lookback window.
type Selector string

// Known selectors.
const (
	Last7Days   Selector = "last_7_days"
	LastMonth   Selector = "last_month"
	Last6Months Selector = "last_6_months"
	LastYear    Selector = "last_year"
	AllTime     Selector = "all_time"
)

var lookbackDays = map[Selector]int{
	Last7Days:   7,
	LastMonth:   30,
	Last6Months: 182,
	LastYear:    365,
}

var labels = map[Selector]string{
	Last7Days:   "Last 7 days",
	LastMonth:   "Last month",
	Last6Months: "Last 6 months",
	LastYear:    "Last year",
	AllTime:     "All time",
}

// aliases from the legacy sheet UI.
var aliases = map[string]Selector{
	"ultimi 7 giorni": Last7Days,
	"ultimo mese":     LastMonth,
	"ultimi 6 mesi":   Last6Months,
	"ultimo anno":     LastYear,
	"lifelong":        AllTime,
}

// All returns every selector in UI order.
func All() []Selector {
	return []Selector{Last7Days, LastMonth, Last6Months, LastYear, AllTime}
}

// Parse resolves a token, display label or legacy label. Anything unrecognized
// resolves to AllTime.
func Parse(token string) Selector {
	t := strings.ToLower(strings.TrimSpace(token))
	for _, s := range All() {
		if t == string(s) || t == strings.ToLower(labels[s]) {
			return s
		}
	}
	if s, ok := aliases[t]; ok {
		return s
	}
	return AllTime
}

// Label returns the display label.
func (s Selector) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return labels[AllTime]
}

// LookbackDays returns the window length. Bounded is false for AllTime and
// unknown selectors.
func (s Selector) LookbackDays() (days int, bounded bool) {
	days, bounded = lookbackDays[s]
	return days, bounded
}

// Predicate selects records.
type Predicate func(model.Record) bool

// Since returns the inclusive lower bound for s relative to now.
func (s Selector) Since(now time.Time) (time.Time, bool) {
	days, ok := s.LookbackDays()
	if !ok {
		return time.Time{}, false
	}
	return now.Add(-time.Duration(days) * day), true
}

// Window returns the predicate for s: timestamp >= now - lookback. The
// boundary is inclusive. AllTime accepts everything.
func Window(s Selector, now time.Time) Predicate {
	since, ok := s.Since(now)
	if !ok {
		return func(model.Record) bool { return true }
	}
	return func(r model.Record) bool {
		return !r.Timestamp.Before(since)
	}
}

// Filter returns the records matching keep in their original order. The input
// slice is never modified.
func Filter(records []model.Record, keep Predicate) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
