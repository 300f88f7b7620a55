package valueobjects

import (
	"moodlog-backend/domain/config"
	pkgerrors "moodlog-backend/pkg/errors"
)

// ScaleKind names the self-report dimension a score belongs to
type ScaleKind string

const (
	ScaleMood   ScaleKind = "mood_score"
	ScaleStress ScaleKind = "stress_level"
	ScaleEnergy ScaleKind = "energy_level"
)

// Score is a value object for a 1..10 self-report rating. Out-of-range
// values are rejected at construction, never clamped.
type Score struct {
	kind  ScaleKind
	value int
}

// NewScore creates a score with validation using default configuration
func NewScore(kind ScaleKind, value int) (Score, error) {
	return NewScoreWithConfig(kind, value, config.DefaultDomainConfig())
}

// NewScoreWithConfig creates a score with validation and configuration
func NewScoreWithConfig(kind ScaleKind, value int, cfg *config.DomainConfig) (Score, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	if value < cfg.ScoreMin || value > cfg.ScoreMax {
		return Score{}, pkgerrors.NewScoreRangeError(string(kind), value)
	}

	return Score{kind: kind, value: value}, nil
}

// Kind returns the dimension this score rates
func (s Score) Kind() ScaleKind {
	return s.kind
}

// Value returns the numeric rating
func (s Score) Value() int {
	return s.value
}
