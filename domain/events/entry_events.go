package events

import "time"

// JournalAggregateID identifies the single journal this deployment serves.
const JournalAggregateID = "journal"

// EntryLogged is raised when a new entry is appended to the journal
type EntryLogged struct {
	BaseEvent
	MoodScore   int      `json:"mood_score"`
	StressLevel int      `json:"stress_level"`
	EnergyLevel int      `json:"energy_level"`
	SleepHours  float64  `json:"sleep_hours"`
	Tags        []string `json:"tags"`
	Mirrored    bool     `json:"mirrored"`
}

// NewEntryLogged creates an EntryLogged event
func NewEntryLogged(moodScore, stressLevel, energyLevel int, sleepHours float64, tags []string, timestamp time.Time) EntryLogged {
	return EntryLogged{
		BaseEvent:   newBaseEvent(JournalAggregateID, "journal.entry_logged", timestamp),
		MoodScore:   moodScore,
		StressLevel: stressLevel,
		EnergyLevel: energyLevel,
		SleepHours:  sleepHours,
		Tags:        tags,
	}
}

// LowMoodDetected is raised when the recent mood average drops below the
// configured alert threshold
type LowMoodDetected struct {
	BaseEvent
	AverageMood float64 `json:"average_mood"`
	Threshold   float64 `json:"threshold"`
	WindowDays  int     `json:"window_days"`
	SampleCount int     `json:"sample_count"`
}

// NewLowMoodDetected creates a LowMoodDetected event
func NewLowMoodDetected(averageMood, threshold float64, windowDays, sampleCount int, timestamp time.Time) LowMoodDetected {
	return LowMoodDetected{
		BaseEvent:   newBaseEvent(JournalAggregateID, "journal.low_mood_detected", timestamp),
		AverageMood: averageMood,
		Threshold:   threshold,
		WindowDays:  windowDays,
		SampleCount: sampleCount,
	}
}

// EntriesImported is raised after an import batch is accepted
type EntriesImported struct {
	BaseEvent
	Count int `json:"count"`
}

// NewEntriesImported creates an EntriesImported event
func NewEntriesImported(count int, timestamp time.Time) EntriesImported {
	return EntriesImported{
		BaseEvent: newBaseEvent(JournalAggregateID, "journal.entries_imported", timestamp),
		Count:     count,
	}
}

// MirrorHydrated is raised after the in-memory journal is replaced from the
// external mirror
type MirrorHydrated struct {
	BaseEvent
	Count int `json:"count"`
}

// NewMirrorHydrated creates a MirrorHydrated event
func NewMirrorHydrated(count int, timestamp time.Time) MirrorHydrated {
	return MirrorHydrated{
		BaseEvent: newBaseEvent(JournalAggregateID, "journal.mirror_hydrated", timestamp),
		Count:     count,
	}
}
