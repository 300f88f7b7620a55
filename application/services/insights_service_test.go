package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodlog-backend/domain/analytics"
	"moodlog-backend/domain/core/entities"
	"moodlog-backend/infrastructure/persistence/memory"
	pkgerrors "moodlog-backend/pkg/errors"
)

func newInsightsService(store *memory.EntryStore) *InsightsService {
	return NewInsightsService(
		store,
		analytics.NewTrendAnalyzer(nil),
		analytics.NewPatternAnalyzer(nil),
		memory.NewInMemoryCache(),
		60,
		nil,
		testCollector(),
		nil,
	)
}

// seedMoods appends one entry per mood, spaced a minute apart ending now,
// so every entry falls inside any positive look-back window
func seedMoods(t *testing.T, store *memory.EntryStore, moods ...int) {
	t.Helper()
	base := time.Now().Add(-time.Duration(len(moods)) * time.Minute)
	entries := make([]*entities.Entry, 0, len(moods))
	for i, mood := range moods {
		entries = append(entries, entryAt(t, base.Add(time.Duration(i)*time.Minute), entities.EntryDraft{MoodScore: mood}))
	}
	store.AppendAll(context.Background(), entries)
}

func TestInsightsService_TrendsImprovingRun(t *testing.T) {
	// Arrange
	store := memory.NewEntryStore(nil, nil)
	seedMoods(t, store, 3, 3, 4, 8, 9, 9)
	service := newInsightsService(store)

	// Act
	report, err := service.Trends(context.Background(), 30)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 6, report.EntryCount)
	assert.Equal(t, analytics.TrendImproving, report.MoodTrend)
	assert.InDelta(t, 6.0, report.AverageMood, 0.001)
}

func TestInsightsService_TrendsEmptyWindowIsNoData(t *testing.T) {
	// Arrange
	service := newInsightsService(memory.NewEntryStore(nil, nil))

	// Act
	report, err := service.Trends(context.Background(), 30)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNoData(err))
	assert.Nil(t, report)
}

func TestInsightsService_TrendsSingleEntryInsufficientData(t *testing.T) {
	// Arrange
	store := memory.NewEntryStore(nil, nil)
	seedMoods(t, store, 7)
	service := newInsightsService(store)

	// Act
	report, err := service.Trends(context.Background(), 30)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, analytics.TrendInsufficientData, report.MoodTrend)
	assert.InDelta(t, 7.0, report.AverageMood, 0.001)
}

func TestInsightsService_TrendsRejectsNegativeWindow(t *testing.T) {
	// Arrange
	service := newInsightsService(memory.NewEntryStore(nil, nil))

	// Act
	report, err := service.Trends(context.Background(), -1)

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Nil(t, report)
}

func TestInsightsService_TrendsServedFromCache(t *testing.T) {
	// Arrange
	store := memory.NewEntryStore(nil, nil)
	seedMoods(t, store, 5, 6)
	service := newInsightsService(store)
	ctx := context.Background()

	first, err := service.Trends(ctx, 30)
	require.NoError(t, err)

	// Act: more entries arrive but nothing cleared the cache
	seedMoods(t, store, 9, 9)
	second, err := service.Trends(ctx, 30)

	// Assert
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 2, second.EntryCount)
}

func TestInsightsService_PatternsCountsTagsCaseSensitively(t *testing.T) {
	// Arrange
	store := memory.NewEntryStore(nil, nil)
	now := time.Now()
	store.AppendAll(context.Background(), []*entities.Entry{
		entryAt(t, now.Add(-2*time.Hour), entities.EntryDraft{MoodScore: 5, Tags: []string{"work"}}),
		entryAt(t, now.Add(-time.Hour), entities.EntryDraft{MoodScore: 6, Tags: []string{"Work"}}),
		entryAt(t, now, entities.EntryDraft{MoodScore: 7, Tags: []string{"work", "rest"}}),
	})
	service := newInsightsService(store)

	// Act
	report, err := service.Patterns(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, report.EntryCount)
	require.NotEmpty(t, report.TopTags)
	assert.Equal(t, analytics.TagCount{Tag: "work", Count: 2}, report.TopTags[0])
}

func TestInsightsService_PatternsEmptyJournalIsNoData(t *testing.T) {
	// Arrange
	service := newInsightsService(memory.NewEntryStore(nil, nil))

	// Act
	report, err := service.Patterns(context.Background())

	// Assert
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNoData(err))
	assert.Nil(t, report)
}

func TestInsightsService_DefaultTrendWindow(t *testing.T) {
	// Arrange
	service := newInsightsService(memory.NewEntryStore(nil, nil))

	// Assert
	assert.Equal(t, 30, service.DefaultTrendWindow())
}
