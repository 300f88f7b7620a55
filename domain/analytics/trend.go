// Package analytics derives summaries and habit patterns from journal
// entries. Analyzers are pure: they read an entry snapshot and never touch
// the store.
package analytics

import (
	"time"

	"moodlog-backend/domain/config"
	"moodlog-backend/domain/core/entities"
	pkgerrors "moodlog-backend/pkg/errors"
)

// Trend classifies the direction of mood over a window
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// TrendReport summarizes a window of entries. Averages are plain unweighted
// means; the date range spans the earliest and latest timestamps actually
// present, whatever order the entries arrived in.
type TrendReport struct {
	EntryCount        int
	AverageMood       float64
	AverageStress     float64
	AverageEnergy     float64
	AverageSleepHours float64
	MoodTrend         Trend
	From              time.Time
	To                time.Time
}

// TrendAnalyzer computes trend reports over entry subsequences
type TrendAnalyzer struct {
	cfg *config.DomainConfig
}

// NewTrendAnalyzer creates a trend analyzer
func NewTrendAnalyzer(cfg *config.DomainConfig) *TrendAnalyzer {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &TrendAnalyzer{cfg: cfg}
}

// Summarize computes the trend report for the given entries. An empty input
// yields an explicit no-data error, never zero-filled statistics.
func (a *TrendAnalyzer) Summarize(entries []*entities.Entry) (*TrendReport, error) {
	if len(entries) == 0 {
		return nil, pkgerrors.ErrNoEntries()
	}

	var moodSum, stressSum, energySum, sleepSum float64
	moods := make([]int, 0, len(entries))

	earliest := entries[0].Timestamp()
	latest := entries[0].Timestamp()

	for _, entry := range entries {
		moodSum += float64(entry.MoodScore())
		stressSum += float64(entry.StressLevel())
		energySum += float64(entry.EnergyLevel())
		sleepSum += entry.SleepHours()
		moods = append(moods, entry.MoodScore())

		// Min and max are tracked independently; the sequence is not
		// assumed to be chronologically ordered
		if entry.Timestamp().Before(earliest) {
			earliest = entry.Timestamp()
		}
		if entry.Timestamp().After(latest) {
			latest = entry.Timestamp()
		}
	}

	n := float64(len(entries))
	return &TrendReport{
		EntryCount:        len(entries),
		AverageMood:       moodSum / n,
		AverageStress:     stressSum / n,
		AverageEnergy:     energySum / n,
		AverageSleepHours: sleepSum / n,
		MoodTrend:         a.classify(moods),
		From:              earliest,
		To:                latest,
	}, nil
}

// classify applies a two-bucket slope heuristic: the sequence is split at the
// midpoint (the extra element of an odd-length sequence goes to the second
// half) and the means of the halves are compared. It is a deliberate
// approximation, not a regression.
func (a *TrendAnalyzer) classify(moods []int) Trend {
	if len(moods) < 2 {
		return TrendInsufficientData
	}

	mid := len(moods) / 2
	delta := mean(moods[mid:]) - mean(moods[:mid])

	switch {
	case delta > a.cfg.TrendDeltaThreshold:
		return TrendImproving
	case delta < -a.cfg.TrendDeltaThreshold:
		return TrendDeclining
	default:
		// A delta of exactly the threshold in either direction is stable
		return TrendStable
	}
}

func mean(values []int) float64 {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
