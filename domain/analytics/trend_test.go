package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodlog-backend/domain/core/entities"
	pkgerrors "moodlog-backend/pkg/errors"
)

func entryAt(t *testing.T, ts time.Time, draft entities.EntryDraft) *entities.Entry {
	t.Helper()
	entry, err := entities.ReconstructEntry(ts, draft)
	require.NoError(t, err)
	return entry
}

func moodSeries(t *testing.T, moods ...int) []*entities.Entry {
	t.Helper()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := make([]*entities.Entry, 0, len(moods))
	for i, mood := range moods {
		ts := base.Add(time.Duration(i) * 24 * time.Hour)
		entries = append(entries, entryAt(t, ts, entities.EntryDraft{MoodScore: mood}))
	}
	return entries
}

func TestTrendAnalyzer_EmptyInput(t *testing.T) {
	// Arrange
	analyzer := NewTrendAnalyzer(nil)

	// Act
	report, err := analyzer.Summarize(nil)

	// Assert
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, pkgerrors.IsNoData(err))
}

func TestTrendAnalyzer_ImprovingRun(t *testing.T) {
	// Arrange
	analyzer := NewTrendAnalyzer(nil)
	entries := moodSeries(t, 3, 3, 4, 8, 9, 9)

	// Act
	report, err := analyzer.Summarize(entries)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 6, report.EntryCount)
	assert.InDelta(t, 6.0, report.AverageMood, 0.0001)
	// Halves average 3.33 and 8.67, well past the threshold
	assert.Equal(t, TrendImproving, report.MoodTrend)
}

func TestTrendAnalyzer_DecliningRun(t *testing.T) {
	// Arrange
	analyzer := NewTrendAnalyzer(nil)
	entries := moodSeries(t, 9, 8, 3, 2)

	// Act
	report, err := analyzer.Summarize(entries)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, TrendDeclining, report.MoodTrend)
}

func TestTrendAnalyzer_SingleEntryIsInsufficient(t *testing.T) {
	// Arrange
	analyzer := NewTrendAnalyzer(nil)
	entries := moodSeries(t, 7)

	// Act
	report, err := analyzer.Summarize(entries)

	// Assert: averages are still reported, only the trend is withheld
	require.NoError(t, err)
	assert.Equal(t, 1, report.EntryCount)
	assert.InDelta(t, 7.0, report.AverageMood, 0.0001)
	assert.Equal(t, TrendInsufficientData, report.MoodTrend)
}

func TestTrendAnalyzer_ExactThresholdIsStable(t *testing.T) {
	tests := []struct {
		name  string
		moods []int
	}{
		{name: "delta of exactly +0.5", moods: []int{5, 5, 5, 6}},
		{name: "delta of exactly -0.5", moods: []int{6, 5, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			analyzer := NewTrendAnalyzer(nil)
			entries := moodSeries(t, tt.moods...)

			// Act
			report, err := analyzer.Summarize(entries)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, TrendStable, report.MoodTrend)
		})
	}
}

func TestTrendAnalyzer_OddLengthSplitsExtraToSecondHalf(t *testing.T) {
	// Arrange: split as [5] and [5 6] the delta is 0.5, stable; a split of
	// [5 5] and [6] would read improving instead
	analyzer := NewTrendAnalyzer(nil)
	entries := moodSeries(t, 5, 5, 6)

	// Act
	report, err := analyzer.Summarize(entries)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, TrendStable, report.MoodTrend)
}

func TestTrendAnalyzer_AveragesAllMetrics(t *testing.T) {
	// Arrange
	analyzer := NewTrendAnalyzer(nil)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []*entities.Entry{
		entryAt(t, base, entities.EntryDraft{
			MoodScore:   4,
			StressLevel: intPtr(2),
			EnergyLevel: intPtr(3),
			SleepHours:  floatPtr(6.5),
		}),
		entryAt(t, base.Add(24*time.Hour), entities.EntryDraft{
			MoodScore:   8,
			StressLevel: intPtr(4),
			EnergyLevel: intPtr(9),
			SleepHours:  floatPtr(9.5),
		}),
	}

	// Act
	report, err := analyzer.Summarize(entries)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 6.0, report.AverageMood, 0.0001)
	assert.InDelta(t, 3.0, report.AverageStress, 0.0001)
	assert.InDelta(t, 6.0, report.AverageEnergy, 0.0001)
	assert.InDelta(t, 8.0, report.AverageSleepHours, 0.0001)
}

func TestTrendAnalyzer_DateRangeIgnoresEntryOrder(t *testing.T) {
	// Arrange: entries deliberately out of chronological order
	analyzer := NewTrendAnalyzer(nil)
	earliest := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	middle := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	latest := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	entries := []*entities.Entry{
		entryAt(t, middle, entities.EntryDraft{MoodScore: 5}),
		entryAt(t, latest, entities.EntryDraft{MoodScore: 5}),
		entryAt(t, earliest, entities.EntryDraft{MoodScore: 5}),
	}

	// Act
	report, err := analyzer.Summarize(entries)

	// Assert
	require.NoError(t, err)
	assert.True(t, report.From.Equal(earliest))
	assert.True(t, report.To.Equal(latest))
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// Benchmarks

func BenchmarkTrendAnalyzer_Summarize(b *testing.B) {
	analyzer := NewTrendAnalyzer(nil)
	moods := make([]int, 365)
	for i := range moods {
		moods[i] = i%10 + 1
	}
	entries := moodSeries(&testing.T{}, moods...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = analyzer.Summarize(entries)
	}
}
