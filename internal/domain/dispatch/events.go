package dispatch

import (
	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// Event types emitted by the DeliveryRun aggregate
const (
	EventRunCreated       = "dispatch.run.created"
	EventRunStatusChanged = "dispatch.run.status_changed"
	EventRunCancelled     = "dispatch.run.cancelled"
)

const aggregateTypeRun = "DeliveryRun"

// RunCreatedEvent is emitted when a run is registered.
type RunCreatedEvent struct {
	shared.BaseDomainEvent
	StoreName string    `json:"store_name"`
	RunType   string    `json:"run_type"`
	TruckType string    `json:"truck_type"`
}

// NewRunCreatedEvent creates a RunCreatedEvent for the given run.
func NewRunCreatedEvent(run *DeliveryRun) *RunCreatedEvent {
	return &RunCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRunCreated, aggregateTypeRun, run.ID),
		StoreName:       run.StoreName,
		RunType:         run.RunType,
		TruckType:       run.TruckType,
	}
}

// RunStatusChangedEvent is emitted on every lifecycle transition.
type RunStatusChangedEvent struct {
	shared.BaseDomainEvent
	From RunStatus `json:"from"`
	To   RunStatus `json:"to"`
}

// NewRunStatusChangedEvent creates a RunStatusChangedEvent.
func NewRunStatusChangedEvent(run *DeliveryRun, from RunStatus) *RunStatusChangedEvent {
	return &RunStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRunStatusChanged, aggregateTypeRun, run.ID),
		From:            from,
		To:              run.Status,
	}
}

// RunCancelledEvent is emitted when a run is aborted.
type RunCancelledEvent struct {
	shared.BaseDomainEvent
	From RunStatus `json:"from"`
}

// NewRunCancelledEvent creates a RunCancelledEvent.
func NewRunCancelledEvent(run *DeliveryRun, from RunStatus) *RunCancelledEvent {
	return &RunCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRunCancelled, aggregateTypeRun, run.ID),
		From:            from,
	}
}
