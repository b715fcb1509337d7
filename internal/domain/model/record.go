// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Rating bounds shared by every skill.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// Skill names one self-rated mental skill.
type Skill string

// Tracked skills, in display order.
const (
	SkillAcceptance Skill = "Acceptance"
	SkillRoutine    Skill = "Routine"
	SkillDecision   Skill = "Decision"
	SkillFocus      Skill = "Focus"
	SkillEnergy     Skill = "Energy"
	SkillTension    Skill = "Tension"
)

// AllSkills returns every tracked skill in display order.
func AllSkills() []Skill {
	return []Skill{SkillAcceptance, SkillRoutine, SkillDecision, SkillFocus, SkillEnergy, SkillTension}
}

// RadarSkills returns the five skills plotted on the radar. Tension is
// reported but never plotted.
func RadarSkills() []Skill {
	return []Skill{SkillAcceptance, SkillRoutine, SkillDecision, SkillFocus, SkillEnergy}
}

// Record is one journal entry logged after an event.
type Record struct {
	Timestamp  time.Time // entry creation time
	Venue      string    // tournament or course
	Score      int       // 0 = training session
	Acceptance int
	Routine    int
	Decision   int
	Focus      int
	Energy     int
	Tension    int // 1 = relaxed, 5 = blocked
	Notes      string
}

// Rating returns the value recorded for skill. The second result is false for
// an unknown skill.
func (r Record) Rating(s Skill) (int, bool) {
	switch s {
	case SkillAcceptance:
		return r.Acceptance, true
	case SkillRoutine:
		return r.Routine, true
	case SkillDecision:
		return r.Decision, true
	case SkillFocus:
		return r.Focus, true
	case SkillEnergy:
		return r.Energy, true
	case SkillTension:
		return r.Tension, true
	}
	return 0, false
}

// IsTraining reports whether the entry has no competitive score.
func (r Record) IsTraining() bool { return r.Score == 0 }

// Validate checks the form boundary rules. Errors wrap ErrValidation.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Venue) == "" {
		return fmt.Errorf("%w: venue is required", ErrValidation)
	}
	if r.Score < 0 {
		return fmt.Errorf("%w: score must be >= 0, got %d", ErrValidation, r.Score)
	}
	for _, s := range AllSkills() {
		v, _ := r.Rating(s)
		if v < MinRating || v > MaxRating {
			return fmt.Errorf("%w: %s must be in [%d,%d], got %d", ErrValidation, s, MinRating, MaxRating, v)
		}
	}
	return nil
}

// NewRecord returns an entry for venue with every rating at mid-scale.
func NewRecord(venue string, score int) Record {
	return Record{
		Venue:      venue,
		Score:      score,
		Acceptance: DefaultRating,
		Routine:    DefaultRating,
		Decision:   DefaultRating,
		Focus:      DefaultRating,
		Energy:     DefaultRating,
		Tension:    DefaultRating,
	}
}
