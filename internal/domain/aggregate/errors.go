package aggregate

import "errors"

// Sentinel kinds for aggregation errors.
var (
	ErrEmptyInput   = errors.New("empty aggregation input")
	ErrNoSkills     = errors.New("no skills to aggregate")
	ErrUnknownSkill = errors.New("unknown skill")
)
