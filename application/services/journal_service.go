// Package services holds the application layer: thin orchestrators that join
// the domain model to stores, publishers, and notification channels.
package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"moodlog-backend/application/ports"
	domaincfg "moodlog-backend/domain/config"
	"moodlog-backend/domain/core/entities"
	"moodlog-backend/domain/events"
	"moodlog-backend/infrastructure/observability"
	pkgerrors "moodlog-backend/pkg/errors"
)

// JournalService provides entry logging and journal reads
type JournalService struct {
	store     ports.EntryStore
	publisher ports.EventPublisher
	cache     ports.Cache
	cfg       *domaincfg.DomainConfig
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewJournalService creates a new journal service
func NewJournalService(
	store ports.EntryStore,
	publisher ports.EventPublisher,
	cache ports.Cache,
	cfg *domaincfg.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) *JournalService {
	if cfg == nil {
		cfg = domaincfg.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{
		store:     store,
		publisher: publisher,
		cache:     cache,
		cfg:       cfg,
		metrics:   metrics,
		logger:    logger,
	}
}

// LogEntry validates and appends a new entry. The returned bool reports
// whether the mirror accepted the entry; the in-memory journal holds it
// either way.
func (s *JournalService) LogEntry(ctx context.Context, draft entities.EntryDraft) (*entities.Entry, bool, error) {
	entry, err := entities.NewEntryWithConfig(draft, s.cfg)
	if err != nil {
		s.logger.Debug("Rejected entry", zap.Error(err))
		return nil, false, err
	}

	mirrored := s.store.Append(ctx, entry)
	s.metrics.EntriesLogged.Inc()
	if !mirrored {
		s.metrics.MirrorFailures.Inc()
	}

	s.cache.Clear(ctx)
	s.publishEntryEvents(ctx, entry, mirrored)
	s.checkLowMood(ctx)

	s.logger.Info("Entry logged",
		zap.Int("moodScore", entry.MoodScore()),
		zap.Int("tags", len(entry.GetTags())),
		zap.Bool("mirrored", mirrored),
	)
	return entry, mirrored, nil
}

// Entries returns the full journal in insertion order
func (s *JournalService) Entries() []*entities.Entry {
	return s.store.All()
}

// RecentEntries returns entries from the last N days
func (s *JournalService) RecentEntries(days int) ([]*entities.Entry, error) {
	return s.store.Recent(days)
}

// SearchByTag returns entries carrying the tag, compared case-insensitively
func (s *JournalService) SearchByTag(tag string) ([]*entities.Entry, error) {
	if tag == "" {
		return nil, pkgerrors.NewValidationError("tag is required")
	}
	return s.store.ByTag(tag), nil
}

// DefaultRecentWindow returns the look-back window used when a request
// does not name one
func (s *JournalService) DefaultRecentWindow() int {
	return s.cfg.RecentWindowDays
}

// publishEntryEvents flushes the entry's uncommitted events, stamping the
// mirror outcome into the logged event. Publish failures are logged and
// swallowed; the append has already happened.
func (s *JournalService) publishEntryEvents(ctx context.Context, entry *entities.Entry, mirrored bool) {
	uncommitted := entry.GetUncommittedEvents()
	if len(uncommitted) == 0 {
		return
	}

	out := make([]events.DomainEvent, 0, len(uncommitted))
	for _, event := range uncommitted {
		if logged, ok := event.(events.EntryLogged); ok {
			logged.Mirrored = mirrored
			event = logged
		}
		out = append(out, event)
	}

	if err := s.publisher.PublishBatch(ctx, out); err != nil {
		s.logger.Warn("Failed to publish entry events", zap.Error(err))
		return
	}
	entry.MarkEventsAsCommitted()
}

// checkLowMood publishes a LowMoodDetected event when the recent average
// drops below the alert threshold. Only the crossing is signalled, not every
// append while the average stays low.
func (s *JournalService) checkLowMood(ctx context.Context) {
	recent, err := s.store.Recent(s.cfg.LowMoodWindowDays)
	if err != nil || len(recent) == 0 {
		return
	}

	average := meanMood(recent)
	if average >= s.cfg.LowMoodThreshold {
		return
	}
	if len(recent) > 1 && meanMood(recent[:len(recent)-1]) < s.cfg.LowMoodThreshold {
		return
	}

	event := events.NewLowMoodDetected(average, s.cfg.LowMoodThreshold, s.cfg.LowMoodWindowDays, len(recent), time.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish low mood event", zap.Error(err))
		return
	}

	s.logger.Info("Low mood detected",
		zap.Float64("averageMood", average),
		zap.Float64("threshold", s.cfg.LowMoodThreshold),
		zap.Int("windowDays", s.cfg.LowMoodWindowDays),
	)
}

func meanMood(entries []*entities.Entry) float64 {
	sum := 0
	for _, entry := range entries {
		sum += entry.MoodScore()
	}
	return float64(sum) / float64(len(entries))
}
