package noop

import (
	"context"

	"threadline-backend/application/ports"
	"threadline-backend/domain/events"

	"go.uber.org/zap"
)

// Publisher is the event publisher used when no event bus is configured,
// which is the case for local development on the in-memory store. Events are
// logged at debug level and otherwise dropped.
type Publisher struct {
	logger *zap.Logger
}

// NewPublisher creates a no-op event publisher
func NewPublisher(logger *zap.Logger) ports.EventPublisher {
	return &Publisher{logger: logger}
}

// Publish logs and drops the event
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.logger.Debug("Dropping event (no event bus configured)",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
	)
	return nil
}

// PublishBatch logs and drops the events
func (p *Publisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	for _, event := range domainEvents {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
