package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"moodlog-backend/application/ports"
	"moodlog-backend/domain/analytics"
	domaincfg "moodlog-backend/domain/config"
	"moodlog-backend/infrastructure/observability"
	pkgerrors "moodlog-backend/pkg/errors"
)

// InsightsService computes trend and pattern reports over the journal.
// Reports are cached until the next journal write or cache expiry.
type InsightsService struct {
	store    ports.EntryStore
	trends   *analytics.TrendAnalyzer
	patterns *analytics.PatternAnalyzer
	cache    ports.Cache
	cacheTTL int
	cfg      *domaincfg.DomainConfig
	metrics  *observability.Collector
	logger   *zap.Logger
}

// NewInsightsService creates a new insights service
func NewInsightsService(
	store ports.EntryStore,
	trends *analytics.TrendAnalyzer,
	patterns *analytics.PatternAnalyzer,
	cache ports.Cache,
	cacheTTL int,
	cfg *domaincfg.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) *InsightsService {
	if cfg == nil {
		cfg = domaincfg.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InsightsService{
		store:    store,
		trends:   trends,
		patterns: patterns,
		cache:    cache,
		cacheTTL: cacheTTL,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
	}
}

// Trends summarizes the entries of the last N days. An empty window yields
// an explicit no-data error, never zero-filled statistics.
func (s *InsightsService) Trends(ctx context.Context, days int) (*analytics.TrendReport, error) {
	key := fmt.Sprintf("trends:%d", days)
	if cached, ok := s.cache.Get(ctx, key); ok {
		if report, ok := cached.(*analytics.TrendReport); ok {
			s.metrics.CacheHits.Inc()
			return report, nil
		}
	}
	s.metrics.CacheMisses.Inc()

	entries, err := s.store.Recent(days)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, pkgerrors.ErrNoEntriesInWindow(days)
	}

	report, err := s.trends.Summarize(entries)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, report, s.cacheTTL)
	s.logger.Debug("Trend report computed",
		zap.Int("days", days),
		zap.Int("entryCount", report.EntryCount),
		zap.String("moodTrend", string(report.MoodTrend)),
	)
	return report, nil
}

// Patterns analyzes the whole journal for weekday and tag patterns
func (s *InsightsService) Patterns(ctx context.Context) (*analytics.PatternReport, error) {
	const key = "patterns"
	if cached, ok := s.cache.Get(ctx, key); ok {
		if report, ok := cached.(*analytics.PatternReport); ok {
			s.metrics.CacheHits.Inc()
			return report, nil
		}
	}
	s.metrics.CacheMisses.Inc()

	report, err := s.patterns.Analyze(s.store.All())
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, report, s.cacheTTL)
	s.logger.Debug("Pattern report computed", zap.Int("entryCount", report.EntryCount))
	return report, nil
}

// DefaultTrendWindow returns the look-back window used when a request does
// not name one
func (s *InsightsService) DefaultTrendWindow() int {
	return s.cfg.TrendWindowDays
}
