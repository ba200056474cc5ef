package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// LoggingEventHandler writes an audit line for every domain event. It is
// registered as a wildcard handler so run lifecycle changes always leave a
// trace in the logs.
type LoggingEventHandler struct {
	logger *zap.Logger
}

// NewLoggingEventHandler creates a handler that logs all domain events
func NewLoggingEventHandler(logger *zap.Logger) *LoggingEventHandler {
	return &LoggingEventHandler{logger: logger}
}

// Handle logs the event
func (h *LoggingEventHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty slice, subscribing the handler to all events
func (h *LoggingEventHandler) EventTypes() []string {
	return nil
}

// Ensure LoggingEventHandler implements EventHandler
var _ shared.EventHandler = (*LoggingEventHandler)(nil)
