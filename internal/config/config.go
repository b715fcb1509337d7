// Package config defines service configuration and its loader.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// StoreBackend names the sheet collaborator: memory, csv or sqlite.
	StoreBackend string `koanf:"store_backend"`

	// StorePath locates the csv file or sqlite database.
	StorePath string `koanf:"store_path"`

	// CacheTTLMS bounds how long a load result is reused. Zero or negative
	// disables the cache.
	CacheTTLMS int `koanf:"cache_ttl_ms"`

	// DedupeTTLMS bounds how long a submission id is remembered.
	DedupeTTLMS int `koanf:"dedupe_ttl_ms"`

	// Passphrase gates every operation when non-empty.
	Passphrase string `koanf:"passphrase"`

	// NotesLimit caps the characters of notes printed in reports.
	NotesLimit int `koanf:"notes_limit"`

	// ReportTitle is printed at the top of generated reports.
	ReportTitle string `koanf:"report_title"`

	// DefaultPeriod is used when a request names none.
	DefaultPeriod string `koanf:"default_period"`

	// Timezone names the IANA zone for sheet dates. Empty means local time.
	Timezone string `koanf:"timezone"`

	// PageSize is the report page format, e.g. A4 or Letter.
	PageSize string `koanf:"page_size"`

	// ReportAuthor is written to the PDF metadata.
	ReportAuthor string `koanf:"report_author"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		StoreBackend:  "memory",
		CacheTTLMS:    3000,
		DedupeTTLMS:   600_000,
		NotesLimit:    80,
		ReportTitle:   "V.V.L. MIND LAB - PERFORMANCE REPORT",
		DefaultPeriod: "all_time",
		PageSize:      "A4",
		ReportAuthor:  "V.V.L. Mind Lab",
	}
}

// CacheTTL returns CacheTTLMS as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMS) * time.Millisecond
}

// Location resolves Timezone. Validate has already rejected unknown zones.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DedupeTTL returns DedupeTTLMS as a duration.
func (c *Config) DedupeTTL() time.Duration {
	return time.Duration(c.DedupeTTLMS) * time.Millisecond
}
