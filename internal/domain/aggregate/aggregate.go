// Package aggregate computes per-skill means over a record subset.
package aggregate

import (
	"fmt"
	"math"

	"github.com/okian/mindlab/internal/domain/model"
)

// Profile holds full-precision skill means. Round only when presenting.
type Profile struct {
	Skills []model.Skill
	Means  map[model.Skill]float64
	Count  int
}

// Mean returns the mean for s and whether it was aggregated.
func (p Profile) Mean(s model.Skill) (float64, bool) {
	v, ok := p.Means[s]
	return v, ok
}

// Rounded returns the means rounded to places decimals.
func (p Profile) Rounded(places int) map[model.Skill]float64 {
	out := make(map[model.Skill]float64, len(p.Means))
	for s, v := range p.Means {
		out[s] = Round(v, places)
	}
	return out
}

// Aggregate returns the arithmetic mean of each skill across records.
// An empty subset yields ErrEmptyInput rather than NaN.
func Aggregate(records []model.Record, skills []model.Skill) (Profile, error) {
	if len(skills) == 0 {
		return Profile{}, ErrNoSkills
	}
	if len(records) == 0 {
		return Profile{}, ErrEmptyInput
	}

	sums := make(map[model.Skill]int, len(skills))
	for _, r := range records {
		for _, s := range skills {
			v, ok := r.Rating(s)
			if !ok {
				return Profile{}, fmt.Errorf("%w: %q", ErrUnknownSkill, s)
			}
			sums[s] += v
		}
	}

	p := Profile{
		Skills: append([]model.Skill(nil), skills...),
		Means:  make(map[model.Skill]float64, len(skills)),
		Count:  len(records),
	}
	n := float64(len(records))
	for _, s := range skills {
		p.Means[s] = float64(sums[s]) / n
	}
	return p, nil
}

// Round rounds v half away from zero to places decimals.
func Round(v float64, places int) float64 {
	f := math.Pow(10, float64(places))
	return math.Round(v*f) / f
}
