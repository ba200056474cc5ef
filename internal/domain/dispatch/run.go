package dispatch

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// RunStatus is the lifecycle state of a delivery run. Transitions are driven
// externally through the API; the domain only enforces linear order.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusLoading   RunStatus = "loading"
	RunStatusPreloaded RunStatus = "preloaded"
	RunStatusInTransit RunStatus = "in_transit"
	RunStatusComplete  RunStatus = "complete"
	RunStatusCancelled RunStatus = "cancelled"
)

// IsValid checks whether the status is a known lifecycle state.
func (s RunStatus) IsValid() bool {
	switch s {
	case RunStatusPending, RunStatusLoading, RunStatusPreloaded,
		RunStatusInTransit, RunStatusComplete, RunStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusComplete || s == RunStatusCancelled
}

// next returns the sole legal successor in the linear lifecycle,
// or "" for terminal states.
func (s RunStatus) next() RunStatus {
	switch s {
	case RunStatusPending:
		return RunStatusLoading
	case RunStatusLoading:
		return RunStatusPreloaded
	case RunStatusPreloaded:
		return RunStatusInTransit
	case RunStatusInTransit:
		return RunStatusComplete
	}
	return ""
}

// Truck types used by the dispatch board. TruckType on a run is free text;
// these are the values the fleet actually has.
const (
	TruckTypeBox     = "Box Truck"
	TruckTypeTrailer = "Tractor Trailer"
)

// DeliveryRun is a scheduled container delivery to one store. It is the
// aggregate the dispatch board revolves around: count facts and par levels
// are joined against it to compute supply deficits.
type DeliveryRun struct {
	shared.BaseAggregateRoot

	StoreID          uuid.UUID
	StoreName        string
	DepartmentNumber string
	RunType          string
	TruckType        string
	Status           RunStatus

	StartTime    *time.Time
	PreloadTime  *time.Time
	DepartTime   *time.Time
	CompleteTime *time.Time

	DriverID *uuid.UUID
}

// TableName specifies the database table name
func (DeliveryRun) TableName() string {
	return "active_delivery_runs"
}

// DeriveRunType extracts the run-type tag from a time-slot label: the first
// whitespace-delimited token, kept verbatim ("Morning Runs" -> "Morning").
func DeriveRunType(slotLabel string) (string, error) {
	fields := strings.Fields(slotLabel)
	if len(fields) == 0 {
		return "", shared.NewDomainError("INVALID_INPUT", "Time-slot label must not be empty")
	}
	return fields[0], nil
}

// NewDeliveryRun registers a run for a store in a given time slot. The run
// starts pending with all lifecycle timestamps unset.
func NewDeliveryRun(storeID uuid.UUID, storeName, departmentNumber, slotLabel, truckType string) (*DeliveryRun, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Store ID is required")
	}
	if strings.TrimSpace(storeName) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Store name is required")
	}
	if strings.TrimSpace(truckType) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Truck type is required")
	}

	runType, err := DeriveRunType(slotLabel)
	if err != nil {
		return nil, err
	}

	run := &DeliveryRun{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           storeID,
		StoreName:         strings.TrimSpace(storeName),
		DepartmentNumber:  strings.TrimSpace(departmentNumber),
		RunType:           runType,
		TruckType:         truckType,
		Status:            RunStatusPending,
	}

	run.AddDomainEvent(NewRunCreatedEvent(run))
	return run, nil
}

// TransitionTo advances the run to the given status. Only the immediate
// successor in the linear lifecycle is accepted; the matching lifecycle
// timestamp is stamped on success.
func (r *DeliveryRun) TransitionTo(status RunStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown run status: "+string(status))
	}
	if status == RunStatusCancelled {
		return r.Cancel()
	}
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			"Run is already "+string(r.Status)+" and cannot change status")
	}
	if r.Status.next() != status {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot move run from "+string(r.Status)+" to "+string(status))
	}

	from := r.Status
	r.Status = status
	r.stampTransition(status)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRunStatusChangedEvent(r, from))
	return nil
}

// Cancel aborts the run. Allowed from any non-terminal state.
func (r *DeliveryRun) Cancel() error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			"Run is already "+string(r.Status)+" and cannot be cancelled")
	}

	from := r.Status
	r.Status = RunStatusCancelled
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRunCancelledEvent(r, from))
	return nil
}

// AssignDriver attaches a driver to the run. Terminal runs keep their
// historical driver reference immutable.
func (r *DeliveryRun) AssignDriver(driverID uuid.UUID) error {
	if driverID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Driver ID is required")
	}
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot assign a driver to a "+string(r.Status)+" run")
	}

	r.DriverID = &driverID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

func (r *DeliveryRun) stampTransition(status RunStatus) {
	now := time.Now()
	switch status {
	case RunStatusLoading:
		r.StartTime = &now
	case RunStatusPreloaded:
		r.PreloadTime = &now
	case RunStatusInTransit:
		r.DepartTime = &now
	case RunStatusComplete:
		r.CompleteTime = &now
	}
}
