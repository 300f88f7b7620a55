package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"moodlog-backend/application/ports"
	"moodlog-backend/domain/core/entities"
	"moodlog-backend/domain/events"
	"moodlog-backend/infrastructure/observability"
	pkgerrors "moodlog-backend/pkg/errors"
)

// SyncService reconciles the in-memory journal with its external mirror.
// Hydrate rebuilds the journal from the mirror after a restart; Backfill
// pushes entries the mirror missed, typically after an outage.
type SyncService struct {
	store     ports.EntryStore
	mirror    ports.EntryMirror
	publisher ports.EventPublisher
	cache     ports.Cache
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewSyncService creates a new sync service. The mirror may be nil when the
// deployment runs without one; every operation then fails with a
// not-configured error.
func NewSyncService(
	store ports.EntryStore,
	mirror ports.EntryMirror,
	publisher ports.EventPublisher,
	cache ports.Cache,
	metrics *observability.Collector,
	logger *zap.Logger,
) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		store:     store,
		mirror:    mirror,
		publisher: publisher,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
	}
}

// Hydrate replaces the in-memory journal with the mirror's contents and
// returns the number of entries loaded
func (s *SyncService) Hydrate(ctx context.Context) (int, error) {
	if s.mirror == nil {
		return 0, pkgerrors.NewMirrorNotConfiguredError()
	}

	entries, err := s.mirror.FetchAll(ctx)
	if err != nil {
		s.metrics.MirrorOperations.WithLabelValues("hydrate", "failure").Inc()
		s.logger.Error("Mirror hydration failed", zap.Error(err))
		return 0, s.mirrorError(err)
	}

	s.store.ReplaceAll(ctx, entries)
	s.metrics.MirrorOperations.WithLabelValues("hydrate", "success").Inc()

	s.cache.Clear(ctx)
	if err := s.publisher.Publish(ctx, events.NewMirrorHydrated(len(entries), time.Now())); err != nil {
		s.logger.Warn("Failed to publish hydration event", zap.Error(err))
	}

	s.logger.Info("Journal hydrated from mirror", zap.Int("count", len(entries)))
	return len(entries), nil
}

// Backfill pushes journal entries the mirror is missing and returns how
// many were written. Only the mirror's slice of the local timestamp span is
// fetched; entries are matched by timestamp and mood, counting duplicates,
// so re-running after a partial outage only sends the gap.
func (s *SyncService) Backfill(ctx context.Context) (int, error) {
	if s.mirror == nil {
		return 0, pkgerrors.NewMirrorNotConfiguredError()
	}

	local := s.store.All()
	if len(local) == 0 {
		s.metrics.MirrorOperations.WithLabelValues("backfill", "success").Inc()
		s.logger.Info("Journal empty, nothing to backfill")
		return 0, nil
	}

	from, to := local[0].Timestamp(), local[0].Timestamp()
	for _, entry := range local[1:] {
		if entry.Timestamp().Before(from) {
			from = entry.Timestamp()
		}
		if entry.Timestamp().After(to) {
			to = entry.Timestamp()
		}
	}

	mirrored, err := s.mirror.FetchRange(ctx, from, to.Add(time.Nanosecond))
	if err != nil {
		s.metrics.MirrorOperations.WithLabelValues("backfill", "failure").Inc()
		s.logger.Error("Mirror backfill failed", zap.Error(err))
		return 0, s.mirrorError(err)
	}

	type identity struct {
		unixNano int64
		mood     int
	}
	seen := make(map[identity]int, len(mirrored))
	for _, entry := range mirrored {
		seen[identity{entry.Timestamp().UnixNano(), entry.MoodScore()}]++
	}

	var missing []*entities.Entry
	for _, entry := range local {
		key := identity{entry.Timestamp().UnixNano(), entry.MoodScore()}
		if seen[key] > 0 {
			seen[key]--
			continue
		}
		missing = append(missing, entry)
	}

	if len(missing) == 0 {
		s.metrics.MirrorOperations.WithLabelValues("backfill", "success").Inc()
		s.logger.Info("Mirror already up to date")
		return 0, nil
	}

	if err := s.mirror.AppendBatch(ctx, missing); err != nil {
		s.metrics.MirrorOperations.WithLabelValues("backfill", "failure").Inc()
		s.metrics.MirrorFailures.Inc()
		s.logger.Error("Mirror backfill write failed", zap.Error(err))
		return 0, s.mirrorError(err)
	}

	s.metrics.MirrorOperations.WithLabelValues("backfill", "success").Inc()
	s.logger.Info("Mirror backfilled", zap.Int("count", len(missing)))
	return len(missing), nil
}

// mirrorError passes structured errors through and wraps raw SDK failures
func (s *SyncService) mirrorError(err error) error {
	var appErr *pkgerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return pkgerrors.NewExternalError("entry mirror", err)
}
