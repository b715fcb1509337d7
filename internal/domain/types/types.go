// Package types contains the view shapes shared by the service and its
// transports.
package types

import (
	"time"

	"github.com/okian/mindlab/internal/domain/chart"
	"github.com/okian/mindlab/internal/domain/model"
)

// Entry is one journal record as presented to clients.
type Entry struct {
	Date     time.Time      `json:"date"`
	Venue    string         `json:"venue"`
	Score    int            `json:"score"`
	Training bool           `json:"training"`
	Ratings  map[string]int `json:"ratings"`
	Notes    string         `json:"notes,omitempty"`
}

// EntryFrom converts a record.
func EntryFrom(r model.Record) Entry {
	ratings := make(map[string]int, len(model.AllSkills()))
	for _, s := range model.AllSkills() {
		v, _ := r.Rating(s)
		ratings[string(s)] = v
	}
	return Entry{
		Date:     r.Timestamp,
		Venue:    r.Venue,
		Score:    r.Score,
		Training: r.IsTraining(),
		Ratings:  ratings,
		Notes:    r.Notes,
	}
}

// Record converts e back to a record. Missing ratings read as zero.
func (e Entry) Record() model.Record {
	return model.Record{
		Timestamp:  e.Date,
		Venue:      e.Venue,
		Score:      e.Score,
		Acceptance: e.Ratings[string(model.SkillAcceptance)],
		Routine:    e.Ratings[string(model.SkillRoutine)],
		Decision:   e.Ratings[string(model.SkillDecision)],
		Focus:      e.Ratings[string(model.SkillFocus)],
		Energy:     e.Ratings[string(model.SkillEnergy)],
		Tension:    e.Ratings[string(model.SkillTension)],
		Notes:      e.Notes,
	}
}

// SkillMean is one skill average. Mean keeps full precision; Display is
// rounded for presentation.
type SkillMean struct {
	Skill   string  `json:"skill"`
	Mean    float64 `json:"mean"`
	Display float64 `json:"display"`
}

// Analysis is the aggregate view of one period.
type Analysis struct {
	Period string             `json:"period"`
	Label  string             `json:"label"`
	Since  *time.Time         `json:"since,omitempty"`
	Count  int                `json:"count"`
	Empty  bool               `json:"empty"`
	Skills []SkillMean        `json:"skills,omitempty"`
	Radar  *chart.RadarSeries `json:"radar,omitempty"`
}

// PeriodOption describes a selectable period.
type PeriodOption struct {
	Token string `json:"token"`
	Label string `json:"label"`
	Days  int    `json:"days,omitempty"`
}

// Receipt acknowledges a submission. Duplicate is set when the submission id
// had already been accepted and nothing new was stored.
type Receipt struct {
	SubmissionID string `json:"submission_id,omitempty"`
	Duplicate    bool   `json:"duplicate"`
	Entry        Entry  `json:"entry"`
}

// Document is a rendered report ready for download.
type Document struct {
	FileName    string
	ContentType string
	Bytes       []byte
}
