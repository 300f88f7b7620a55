package config

import "fmt"

// DomainConfig holds the configurable business rules of the journal.
// The analysis defaults mirror the documented behavior of the tracker:
// a 7-day recency window, a 30-day trend window, and the 0.5 mood delta
// that separates a stable trend from a moving one.
type DomainConfig struct {
	// Self-report scale
	ScoreMin int
	ScoreMax int

	// Defaults applied when an entry omits a field
	DefaultStressLevel int
	DefaultEnergyLevel int
	DefaultSleepHours  float64

	// Analysis windows (days)
	RecentWindowDays int
	TrendWindowDays  int

	// Trend classification
	TrendDeltaThreshold float64

	// Pattern analysis
	TopTagCount int

	// Alerting
	LowMoodThreshold  float64
	LowMoodWindowDays int
	InactivityDays    int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		ScoreMin: 1,
		ScoreMax: 10,

		DefaultStressLevel: 5,
		DefaultEnergyLevel: 5,
		DefaultSleepHours:  8.0,

		RecentWindowDays: 7,
		TrendWindowDays:  30,

		TrendDeltaThreshold: 0.5,

		TopTagCount: 10,

		LowMoodThreshold:  4.0,
		LowMoodWindowDays: 3,
		InactivityDays:    3,
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.ScoreMin >= c.ScoreMax {
		return fmt.Errorf("score range invalid: min %d, max %d", c.ScoreMin, c.ScoreMax)
	}
	if c.DefaultStressLevel < c.ScoreMin || c.DefaultStressLevel > c.ScoreMax {
		return fmt.Errorf("default stress level %d outside score range", c.DefaultStressLevel)
	}
	if c.DefaultEnergyLevel < c.ScoreMin || c.DefaultEnergyLevel > c.ScoreMax {
		return fmt.Errorf("default energy level %d outside score range", c.DefaultEnergyLevel)
	}
	if c.RecentWindowDays < 0 || c.TrendWindowDays < 0 {
		return fmt.Errorf("analysis windows must be non-negative")
	}
	if c.TrendDeltaThreshold < 0 {
		return fmt.Errorf("trend delta threshold must be non-negative")
	}
	if c.TopTagCount <= 0 {
		return fmt.Errorf("top tag count must be positive")
	}
	if c.LowMoodWindowDays <= 0 || c.InactivityDays <= 0 {
		return fmt.Errorf("alert windows must be positive")
	}
	return nil
}
