// Package messaging carries the local stand-in for the event bus.
package messaging

import (
	"context"

	"go.uber.org/zap"

	"moodlog-backend/application/ports"
	"moodlog-backend/domain/events"
)

// NoopPublisher logs events instead of publishing them. It backs local runs
// where no event bus is configured.
type NoopPublisher struct {
	logger *zap.Logger
}

var _ ports.EventPublisher = (*NoopPublisher)(nil)

// NewNoopPublisher creates a publisher that only logs
func NewNoopPublisher(logger *zap.Logger) *NoopPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopPublisher{logger: logger}
}

// Publish logs the event and drops it
func (p *NoopPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.logger.Debug("Event dropped, no bus configured",
		zap.String("eventType", event.GetEventType()),
		zap.String("eventID", event.GetEventID()),
	)
	return nil
}

// PublishBatch logs the events and drops them
func (p *NoopPublisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	for _, event := range domainEvents {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
