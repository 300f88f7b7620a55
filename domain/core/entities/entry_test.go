package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodlog-backend/domain/events"
	pkgerrors "moodlog-backend/pkg/errors"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestNewEntry_AppliesDefaults(t *testing.T) {
	// Arrange
	draft := EntryDraft{MoodScore: 7}

	// Act
	entry, err := NewEntry(draft)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 7, entry.MoodScore())
	assert.Equal(t, 5, entry.StressLevel())
	assert.Equal(t, 5, entry.EnergyLevel())
	assert.Equal(t, 8.0, entry.SleepHours())
	assert.Equal(t, "", entry.Notes())
	assert.Empty(t, entry.GetTags())
	assert.WithinDuration(t, time.Now(), entry.Timestamp(), time.Second)
}

func TestNewEntry_AllFields(t *testing.T) {
	// Arrange
	draft := EntryDraft{
		MoodScore:   3,
		StressLevel: intPtr(9),
		EnergyLevel: intPtr(2),
		SleepHours:  floatPtr(4.5),
		Notes:       "rough night",
		Tags:        []string{"work", "Work", "insomnia"},
	}

	// Act
	entry, err := NewEntry(draft)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, entry.MoodScore())
	assert.Equal(t, 9, entry.StressLevel())
	assert.Equal(t, 2, entry.EnergyLevel())
	assert.Equal(t, 4.5, entry.SleepHours())
	assert.Equal(t, "rough night", entry.Notes())
	// Duplicates and case variants are kept verbatim
	assert.Equal(t, []string{"work", "Work", "insomnia"}, entry.GetTags())
}

func TestNewEntry_RejectsOutOfRangeScores(t *testing.T) {
	tests := []struct {
		name  string
		draft EntryDraft
	}{
		{"mood too low", EntryDraft{MoodScore: 0}},
		{"mood too high", EntryDraft{MoodScore: 11}},
		{"mood negative", EntryDraft{MoodScore: -3}},
		{"stress too high", EntryDraft{MoodScore: 5, StressLevel: intPtr(11)}},
		{"stress too low", EntryDraft{MoodScore: 5, StressLevel: intPtr(0)}},
		{"energy too high", EntryDraft{MoodScore: 5, EnergyLevel: intPtr(42)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewEntry(tt.draft)

			// Values are rejected outright, never clamped into range
			require.Error(t, err)
			assert.Nil(t, entry)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}
}

func TestNewEntry_SleepHoursUnbounded(t *testing.T) {
	for _, hours := range []float64{0, 0.25, 14.75, 23.5} {
		entry, err := NewEntry(EntryDraft{MoodScore: 6, SleepHours: floatPtr(hours)})

		require.NoError(t, err)
		assert.Equal(t, hours, entry.SleepHours())
	}
}

func TestNewEntry_RaisesEntryLoggedEvent(t *testing.T) {
	// Act
	entry, err := NewEntry(EntryDraft{MoodScore: 8, Tags: []string{"calm"}})

	// Assert
	require.NoError(t, err)
	raised := entry.GetUncommittedEvents()
	require.Len(t, raised, 1)

	logged, ok := raised[0].(events.EntryLogged)
	require.True(t, ok)
	assert.Equal(t, "journal.entry_logged", logged.GetEventType())
	assert.Equal(t, 8, logged.MoodScore)
	assert.Equal(t, []string{"calm"}, logged.Tags)
	assert.NotEmpty(t, logged.GetEventID())

	// Act
	entry.MarkEventsAsCommitted()

	// Assert
	assert.Empty(t, entry.GetUncommittedEvents())
}

func TestReconstructEntry_PreservesTimestamp(t *testing.T) {
	// Arrange
	recorded := time.Date(2025, 2, 14, 21, 30, 0, 0, time.UTC)

	// Act
	entry, err := ReconstructEntry(recorded, EntryDraft{MoodScore: 4, Notes: "restored"})

	// Assert
	require.NoError(t, err)
	assert.True(t, entry.Timestamp().Equal(recorded))
	// Reconstruction is not a new occurrence, so no events are raised
	assert.Empty(t, entry.GetUncommittedEvents())
}

func TestReconstructEntry_StillValidates(t *testing.T) {
	_, err := ReconstructEntry(time.Now(), EntryDraft{MoodScore: 99})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestEntry_HasTagFoldsCase(t *testing.T) {
	entry, err := NewEntry(EntryDraft{MoodScore: 5, Tags: []string{"Work", "rest"}})
	require.NoError(t, err)

	assert.True(t, entry.HasTag("work"))
	assert.True(t, entry.HasTag("WORK"))
	assert.True(t, entry.HasTag("rest"))
	assert.False(t, entry.HasTag("gym"))
}

func TestEntry_ISOWeekday(t *testing.T) {
	tests := []struct {
		date    time.Time
		weekday int
	}{
		{time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), 0}, // Monday
		{time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC), 2}, // Wednesday
		{time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC), 5}, // Saturday
		{time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC), 6}, // Sunday
	}

	for _, tt := range tests {
		entry, err := ReconstructEntry(tt.date, EntryDraft{MoodScore: 5})
		require.NoError(t, err)
		assert.Equal(t, tt.weekday, entry.ISOWeekday())
	}
}

func TestEntry_GetTagsReturnsCopy(t *testing.T) {
	// Arrange
	entry, err := NewEntry(EntryDraft{MoodScore: 5, Tags: []string{"a", "b"}})
	require.NoError(t, err)

	// Act
	tags := entry.GetTags()
	tags[0] = "mutated"

	// Assert
	assert.Equal(t, []string{"a", "b"}, entry.GetTags())
}

func TestNewEntry_CopiesDraftTags(t *testing.T) {
	// Arrange
	source := []string{"a"}
	entry, err := NewEntry(EntryDraft{MoodScore: 5, Tags: source})
	require.NoError(t, err)

	// Act
	source[0] = "mutated"

	// Assert
	assert.Equal(t, []string{"a"}, entry.GetTags())
}

// Benchmarks

func BenchmarkNewEntry(b *testing.B) {
	draft := EntryDraft{
		MoodScore: 7,
		Notes:     "slept well, went for a walk",
		Tags:      []string{"work", "exercise"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = NewEntry(draft)
	}
}
