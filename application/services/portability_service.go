package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"moodlog-backend/application/ports"
	domaincfg "moodlog-backend/domain/config"
	"moodlog-backend/domain/core/entities"
	"moodlog-backend/domain/events"
	"moodlog-backend/infrastructure/observability"
	pkgerrors "moodlog-backend/pkg/errors"
	"moodlog-backend/pkg/utils"
)

// EntryDocument is the portable JSON form of an entry. The key set is part
// of the export contract: a round trip through Export and Import preserves
// every field of every entry.
type EntryDocument struct {
	Timestamp   string   `json:"timestamp"`
	MoodScore   int      `json:"mood_score"`
	Notes       string   `json:"notes"`
	StressLevel int      `json:"stress_level"`
	EnergyLevel int      `json:"energy_level"`
	SleepHours  float64  `json:"sleep_hours"`
	Tags        []string `json:"tags"`
}

// importDocument mirrors EntryDocument with optional fields as pointers so
// an absent key can be told apart from a zero value. Unknown keys in the
// payload are ignored.
type importDocument struct {
	Timestamp   *string  `json:"timestamp"`
	MoodScore   *int     `json:"mood_score"`
	Notes       *string  `json:"notes"`
	StressLevel *int     `json:"stress_level"`
	EnergyLevel *int     `json:"energy_level"`
	SleepHours  *float64 `json:"sleep_hours"`
	Tags        []string `json:"tags"`
}

// PortabilityService exports the journal as JSON and imports it back
type PortabilityService struct {
	store     ports.EntryStore
	publisher ports.EventPublisher
	cache     ports.Cache
	cfg       *domaincfg.DomainConfig
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewPortabilityService creates a new portability service
func NewPortabilityService(
	store ports.EntryStore,
	publisher ports.EventPublisher,
	cache ports.Cache,
	cfg *domaincfg.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) *PortabilityService {
	if cfg == nil {
		cfg = domaincfg.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortabilityService{
		store:     store,
		publisher: publisher,
		cache:     cache,
		cfg:       cfg,
		metrics:   metrics,
		logger:    logger,
	}
}

// Export serializes every entry in insertion order. An empty journal
// exports as an empty JSON array, not null.
func (s *PortabilityService) Export(ctx context.Context) ([]byte, error) {
	entries := s.store.All()

	docs := make([]EntryDocument, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, toDocument(entry))
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to serialize journal").WithCause(err)
	}

	s.logger.Info("Journal exported", zap.Int("count", len(docs)))
	return data, nil
}

// Import parses a JSON array of entry documents and appends every entry to
// the journal. The batch is all-or-nothing: any malformed element rejects
// the whole payload and the journal is left untouched. Existing entries are
// never modified or removed.
func (s *PortabilityService) Import(ctx context.Context, data []byte) (int, error) {
	var docs []importDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		s.metrics.ImportsRejected.Inc()
		return 0, pkgerrors.NewImportFormatError(err.Error())
	}

	entries := make([]*entities.Entry, 0, len(docs))
	for i, doc := range docs {
		entry, err := s.buildEntry(doc)
		if err != nil {
			s.metrics.ImportsRejected.Inc()
			s.logger.Warn("Import rejected",
				zap.Int("element", i),
				zap.Error(err),
			)
			return 0, s.elementError(i, err)
		}
		entries = append(entries, entry)
	}

	s.store.AppendAll(ctx, entries)
	s.metrics.EntriesImported.Add(float64(len(entries)))

	s.cache.Clear(ctx)
	if len(entries) > 0 {
		if err := s.publisher.Publish(ctx, events.NewEntriesImported(len(entries), time.Now())); err != nil {
			s.logger.Warn("Failed to publish import event", zap.Error(err))
		}
	}

	s.logger.Info("Journal imported", zap.Int("count", len(entries)))
	return len(entries), nil
}

// buildEntry validates one import document and reconstructs its entry. A
// document without a timestamp is stamped with the current time, matching
// the live logging path.
func (s *PortabilityService) buildEntry(doc importDocument) (*entities.Entry, error) {
	if doc.MoodScore == nil {
		return nil, fmt.Errorf("is missing mood_score")
	}

	timestamp := time.Now()
	if doc.Timestamp != nil {
		parsed, err := utils.ParseTimestamp(*doc.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("has an unparseable timestamp %q", *doc.Timestamp)
		}
		timestamp = parsed
	}

	draft := entities.EntryDraft{
		MoodScore:   *doc.MoodScore,
		StressLevel: doc.StressLevel,
		EnergyLevel: doc.EnergyLevel,
		SleepHours:  doc.SleepHours,
		Tags:        doc.Tags,
	}
	if doc.Notes != nil {
		draft.Notes = *doc.Notes
	}

	return entities.ReconstructEntryWithConfig(timestamp, draft, s.cfg)
}

// elementError wraps a per-element failure with its position in the payload
func (s *PortabilityService) elementError(index int, err error) error {
	if appErr, ok := err.(*pkgerrors.AppError); ok {
		return pkgerrors.NewImportElementError(index, appErr.Message)
	}
	return pkgerrors.NewImportElementError(index, err.Error())
}

func toDocument(entry *entities.Entry) EntryDocument {
	return EntryDocument{
		Timestamp:   utils.FormatTimestamp(entry.Timestamp()),
		MoodScore:   entry.MoodScore(),
		Notes:       entry.Notes(),
		StressLevel: entry.StressLevel(),
		EnergyLevel: entry.EnergyLevel(),
		SleepHours:  entry.SleepHours(),
		Tags:        entry.GetTags(),
	}
}
