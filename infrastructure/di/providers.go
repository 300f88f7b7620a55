package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"moodlog-backend/application/ports"
	"moodlog-backend/application/services"
	"moodlog-backend/domain/analytics"
	"moodlog-backend/domain/assessments"
	domaincfg "moodlog-backend/domain/config"
	"moodlog-backend/infrastructure/config"
	"moodlog-backend/infrastructure/messaging"
	"moodlog-backend/infrastructure/messaging/eventbridge"
	"moodlog-backend/infrastructure/notifications"
	"moodlog-backend/infrastructure/observability"
	"moodlog-backend/infrastructure/persistence/dynamodb"
	"moodlog-backend/infrastructure/persistence/memory"
	"moodlog-backend/interfaces/http/rest"
	"moodlog-backend/interfaces/http/rest/handlers"
	pkgerrors "moodlog-backend/pkg/errors"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build()
}

// ProvideDomainConfig creates the journal domain configuration
func ProvideDomainConfig() *domaincfg.DomainConfig {
	return domaincfg.DefaultDomainConfig()
}

// ProvideCollector creates the Prometheus metrics collector
func ProvideCollector() *observability.Collector {
	return observability.NewCollector("moodlog")
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideEntryMirror creates the DynamoDB entry mirror, wrapped in a circuit
// breaker. Returns nil when the mirror is disabled; the store and the sync
// service both treat a nil mirror as local-only mode.
func ProvideEntryMirror(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.EntryMirror {
	if !cfg.MirrorEnabled {
		return nil
	}

	mirror := dynamodb.NewEntryMirror(client, cfg.DynamoDBTable, cfg.JournalName, logger)
	return dynamodb.NewBreakerMirror(mirror, dynamodb.DefaultBreakerConfig("entry-mirror"), logger)
}

// ProvideEventPublisher creates an event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if !cfg.EventsEnabled {
		return messaging.NewNoopPublisher(logger)
	}

	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideEmailSender creates the reminder mail sender. Without complete SMTP
// settings reminders are logged instead of delivered.
func ProvideEmailSender(cfg *config.Config, logger *zap.Logger) ports.EmailSender {
	smtpCfg := notifications.SMTPConfig{
		Host:           cfg.SMTPHost,
		Port:           cfg.SMTPPort,
		SenderEmail:    cfg.SenderEmail,
		SenderPassword: cfg.SenderPassword,
	}
	if !smtpCfg.Configured() {
		return notifications.NewNoopSender(logger)
	}

	return notifications.NewSMTPSender(smtpCfg, logger)
}

// ProvideEntryStore creates the in-memory journal store
func ProvideEntryStore(mirror ports.EntryMirror, logger *zap.Logger) ports.EntryStore {
	return memory.NewEntryStore(mirror, logger)
}

// ProvideCache creates a simple in-memory cache for insight reports
func ProvideCache() ports.Cache {
	return memory.NewInMemoryCache()
}

// ProvideCatalog creates the self-assessment catalog
func ProvideCatalog() *assessments.Catalog {
	return assessments.NewCatalog()
}

// ProvideTrendAnalyzer creates a trend analyzer
func ProvideTrendAnalyzer(domain *domaincfg.DomainConfig) *analytics.TrendAnalyzer {
	return analytics.NewTrendAnalyzer(domain)
}

// ProvidePatternAnalyzer creates a pattern analyzer
func ProvidePatternAnalyzer(domain *domaincfg.DomainConfig) *analytics.PatternAnalyzer {
	return analytics.NewPatternAnalyzer(domain)
}

// ProvideJournalService creates the entry logging service
func ProvideJournalService(
	store ports.EntryStore,
	publisher ports.EventPublisher,
	cache ports.Cache,
	domain *domaincfg.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.JournalService {
	return services.NewJournalService(store, publisher, cache, domain, metrics, logger)
}

// ProvideInsightsService creates the trend and pattern reporting service
func ProvideInsightsService(
	store ports.EntryStore,
	trends *analytics.TrendAnalyzer,
	patterns *analytics.PatternAnalyzer,
	cache ports.Cache,
	cfg *config.Config,
	domain *domaincfg.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.InsightsService {
	return services.NewInsightsService(store, trends, patterns, cache, cfg.CacheTTLSeconds, domain, metrics, logger)
}

// ProvidePortabilityService creates the export and import service
func ProvidePortabilityService(
	store ports.EntryStore,
	publisher ports.EventPublisher,
	cache ports.Cache,
	domain *domaincfg.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.PortabilityService {
	return services.NewPortabilityService(store, publisher, cache, domain, metrics, logger)
}

// ProvideAssessmentService creates the self-assessment scoring service
func ProvideAssessmentService(
	catalog *assessments.Catalog,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.AssessmentService {
	return services.NewAssessmentService(catalog, metrics, logger)
}

// ProvideReminderService creates the reminder scheduling service
func ProvideReminderService(
	store ports.EntryStore,
	sender ports.EmailSender,
	domain *domaincfg.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.ReminderService {
	return services.NewReminderService(store, sender, domain, metrics, logger)
}

// ProvideSyncService creates the mirror synchronization service
func ProvideSyncService(
	store ports.EntryStore,
	mirror ports.EntryMirror,
	publisher ports.EventPublisher,
	cache ports.Cache,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.SyncService {
	return services.NewSyncService(store, mirror, publisher, cache, metrics, logger)
}

// ProvideEntryHandler creates the entry HTTP handler
func ProvideEntryHandler(journal *services.JournalService, logger *zap.Logger) *handlers.EntryHandler {
	return handlers.NewEntryHandler(journal, logger)
}

// ProvideInsightsHandler creates the insights HTTP handler
func ProvideInsightsHandler(insights *services.InsightsService, logger *zap.Logger) *handlers.InsightsHandler {
	return handlers.NewInsightsHandler(insights, logger)
}

// ProvidePortabilityHandler creates the export and import HTTP handler
func ProvidePortabilityHandler(portability *services.PortabilityService, logger *zap.Logger) *handlers.PortabilityHandler {
	return handlers.NewPortabilityHandler(portability, logger)
}

// ProvideAssessmentHandler creates the assessment HTTP handler
func ProvideAssessmentHandler(svc *services.AssessmentService, logger *zap.Logger) *handlers.AssessmentHandler {
	return handlers.NewAssessmentHandler(svc, logger)
}

// ProvideReminderHandler creates the reminder HTTP handler
func ProvideReminderHandler(reminders *services.ReminderService, logger *zap.Logger) *handlers.ReminderHandler {
	return handlers.NewReminderHandler(reminders, logger)
}

// ProvideSyncHandler creates the mirror sync HTTP handler
func ProvideSyncHandler(sync *services.SyncService, logger *zap.Logger) *handlers.SyncHandler {
	return handlers.NewSyncHandler(sync, logger)
}

// ProvideErrorHandler creates the central HTTP error handler. Debug detail in
// responses is only enabled outside production.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, !cfg.IsProduction())
}

// ProvideRouter creates the HTTP router over the assembled handlers
func ProvideRouter(
	h rest.Handlers,
	collector *observability.Collector,
	errorHandler *pkgerrors.ErrorHandler,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(h, collector, errorHandler, cfg, logger)
}
