package entities

import (
	"strings"
	"time"

	"moodlog-backend/domain/config"
	"moodlog-backend/domain/core/valueobjects"
	"moodlog-backend/domain/events"
)

// Entry is the main entity representing one self-report in the journal.
// Entries are immutable once created: there are no setters, and the
// timestamp is assigned by the server at insertion time. Identity is the
// entry's position in the journal sequence, not a surrogate key.
type Entry struct {
	// Private fields ensure encapsulation
	timestamp   time.Time
	moodScore   valueobjects.Score
	stressLevel valueobjects.Score
	energyLevel valueobjects.Score
	sleepHours  float64
	notes       string
	tags        []string

	// Domain events that occurred during this entity's lifetime
	events []events.DomainEvent
}

// EntryDraft carries caller-supplied fields before validation. Optional
// fields are pointers so an omitted value can take its documented default
// instead of the zero value.
type EntryDraft struct {
	MoodScore   int
	StressLevel *int
	EnergyLevel *int
	SleepHours  *float64
	Notes       string
	Tags        []string
}

// NewEntry creates a new entry with full validation using default configuration
func NewEntry(draft EntryDraft) (*Entry, error) {
	return NewEntryWithConfig(draft, config.DefaultDomainConfig())
}

// NewEntryWithConfig creates a new entry, stamping the current time as its
// timestamp. Scores outside the configured range are rejected, never clamped.
func NewEntryWithConfig(draft EntryDraft, cfg *config.DomainConfig) (*Entry, error) {
	entry, err := buildEntry(time.Now(), draft, cfg)
	if err != nil {
		return nil, err
	}

	entry.addEvent(events.NewEntryLogged(
		entry.moodScore.Value(),
		entry.stressLevel.Value(),
		entry.energyLevel.Value(),
		entry.sleepHours,
		entry.GetTags(),
		entry.timestamp,
	))

	return entry, nil
}

// ReconstructEntry rebuilds an entry with a preserved timestamp. Import and
// mirror hydration use this path; no domain events are raised.
func ReconstructEntry(timestamp time.Time, draft EntryDraft) (*Entry, error) {
	return ReconstructEntryWithConfig(timestamp, draft, config.DefaultDomainConfig())
}

// ReconstructEntryWithConfig rebuilds an entry with a preserved timestamp and
// the given configuration. The same validation applies as on the live path.
func ReconstructEntryWithConfig(timestamp time.Time, draft EntryDraft, cfg *config.DomainConfig) (*Entry, error) {
	return buildEntry(timestamp, draft, cfg)
}

func buildEntry(timestamp time.Time, draft EntryDraft, cfg *config.DomainConfig) (*Entry, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	mood, err := valueobjects.NewScoreWithConfig(valueobjects.ScaleMood, draft.MoodScore, cfg)
	if err != nil {
		return nil, err
	}

	stressValue := cfg.DefaultStressLevel
	if draft.StressLevel != nil {
		stressValue = *draft.StressLevel
	}
	stress, err := valueobjects.NewScoreWithConfig(valueobjects.ScaleStress, stressValue, cfg)
	if err != nil {
		return nil, err
	}

	energyValue := cfg.DefaultEnergyLevel
	if draft.EnergyLevel != nil {
		energyValue = *draft.EnergyLevel
	}
	energy, err := valueobjects.NewScoreWithConfig(valueobjects.ScaleEnergy, energyValue, cfg)
	if err != nil {
		return nil, err
	}

	// Sleep hours carry no enforced bound
	sleepHours := cfg.DefaultSleepHours
	if draft.SleepHours != nil {
		sleepHours = *draft.SleepHours
	}

	// Tags are kept verbatim: duplicates and case variants are permitted
	tags := make([]string, len(draft.Tags))
	copy(tags, draft.Tags)

	return &Entry{
		timestamp:   timestamp,
		moodScore:   mood,
		stressLevel: stress,
		energyLevel: energy,
		sleepHours:  sleepHours,
		notes:       draft.Notes,
		tags:        tags,
		events:      []events.DomainEvent{},
	}, nil
}

// Timestamp returns when the entry was recorded
func (e *Entry) Timestamp() time.Time {
	return e.timestamp
}

// MoodScore returns the mood rating
func (e *Entry) MoodScore() int {
	return e.moodScore.Value()
}

// StressLevel returns the stress rating
func (e *Entry) StressLevel() int {
	return e.stressLevel.Value()
}

// EnergyLevel returns the energy rating
func (e *Entry) EnergyLevel() int {
	return e.energyLevel.Value()
}

// SleepHours returns the reported hours of sleep
func (e *Entry) SleepHours() float64 {
	return e.sleepHours
}

// Notes returns the free-text note
func (e *Entry) Notes() string {
	return e.notes
}

// GetTags returns all tags
func (e *Entry) GetTags() []string {
	// Return a copy to maintain encapsulation
	tags := make([]string, len(e.tags))
	copy(tags, e.tags)
	return tags
}

// HasTag reports whether the entry carries the tag, compared
// case-insensitively. Retrieval by tag folds case; frequency counting
// deliberately does not.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ISOWeekday returns the entry's weekday with Monday as 0 and Sunday as 6
func (e *Entry) ISOWeekday() int {
	// time.Weekday counts Sunday as 0
	return (int(e.timestamp.Weekday()) + 6) % 7
}

// GetUncommittedEvents returns all uncommitted domain events
func (e *Entry) GetUncommittedEvents() []events.DomainEvent {
	return e.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (e *Entry) MarkEventsAsCommitted() {
	e.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (e *Entry) addEvent(event events.DomainEvent) {
	e.events = append(e.events, event)
}
