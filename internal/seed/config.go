// Package seed fills a running journal service with generated entries and
// checks that its analysis agrees with its own history.
package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumEntries  int           // Number of entries to generate
	SpanDays    int           // Entries are dated within this many days back
	Duplicates  int           // Entries resubmitted with the same submission id
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	Passphrase  string        // Sent on every request when non-empty
	OutputFile  string        // Generated entries are written here when set
	Verbose     bool
	Tolerance   float64 // Allowed difference between server and local means
	PeriodToken string  // Period verified after seeding
}

// Submission is the POST /records body.
type Submission struct {
	Date         string `json:"date"`
	Venue        string `json:"venue"`
	Score        int    `json:"score"`
	Acceptance   int    `json:"acceptance"`
	Routine      int    `json:"routine"`
	Decision     int    `json:"decision"`
	Focus        int    `json:"focus"`
	Energy       int    `json:"energy"`
	Tension      int    `json:"tension"`
	Notes        string `json:"notes,omitempty"`
	SubmissionID string `json:"submission_id"`
}

// Stats holds run statistics.
type Stats struct {
	Generated int
	Submitted int
	Created   int
	Duplicate int
	Failed    int
	Verified  int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
