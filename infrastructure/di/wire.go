//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"moodlog-backend/application/ports"
	"moodlog-backend/application/services"
	domaincfg "moodlog-backend/domain/config"
	"moodlog-backend/infrastructure/config"
	"moodlog-backend/infrastructure/observability"
	"moodlog-backend/interfaces/http/rest"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Domain      *domaincfg.DomainConfig
	Logger      *zap.Logger
	Metrics     *observability.Collector
	Store       ports.EntryStore
	Mirror      ports.EntryMirror
	Publisher   ports.EventPublisher
	Cache       ports.Cache
	Sender      ports.EmailSender
	Journal     *services.JournalService
	Insights    *services.InsightsService
	Portability *services.PortabilityService
	Assessments *services.AssessmentService
	Reminders   *services.ReminderService
	Sync        *services.SyncService
	Router      *rest.Router
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideCollector,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideEntryMirror,
	ProvideEventPublisher,
	ProvideEmailSender,
	ProvideEntryStore,
	ProvideCache,
	ProvideCatalog,
	ProvideTrendAnalyzer,
	ProvidePatternAnalyzer,
	ProvideJournalService,
	ProvideInsightsService,
	ProvidePortabilityService,
	ProvideAssessmentService,
	ProvideReminderService,
	ProvideSyncService,
	ProvideEntryHandler,
	ProvideInsightsHandler,
	ProvidePortabilityHandler,
	ProvideAssessmentHandler,
	ProvideReminderHandler,
	ProvideSyncHandler,
	ProvideErrorHandler,
	ProvideRouter,
	wire.Struct(new(rest.Handlers), "*"),
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates and wires all application dependencies
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil
}
