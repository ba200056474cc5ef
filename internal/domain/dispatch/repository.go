package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RunRepository persists delivery runs.
type RunRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryRun, error)
	// FindByDate returns runs created on the given civil date, newest first.
	FindByDate(ctx context.Context, date time.Time) ([]DeliveryRun, error)
	Save(ctx context.Context, run *DeliveryRun) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StoreRepository persists store reference rows.
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	// FindAll returns all stores ordered by display name ascending.
	FindAll(ctx context.Context) ([]Store, error)
	FindByName(ctx context.Context, name string) (*Store, error)
	Save(ctx context.Context, store *Store) error
}

// StoreSupplyRepository persists par levels, one row per store.
type StoreSupplyRepository interface {
	FindByStoreID(ctx context.Context, storeID uuid.UUID) (*StoreSupply, error)
	FindAll(ctx context.Context) ([]StoreSupply, error)
	Save(ctx context.Context, supply *StoreSupply) error
}

// ContainerCountRepository persists append-only count facts.
type ContainerCountRepository interface {
	// FindByDate returns every count fact whose civil date equals the given date.
	FindByDate(ctx context.Context, date time.Time) ([]ContainerCount, error)
	FindByStoreAndDate(ctx context.Context, storeID uuid.UUID, date time.Time) ([]ContainerCount, error)
	Save(ctx context.Context, count *ContainerCount) error
}

// DriverRepository persists driver reference rows.
type DriverRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Driver, error)
	FindAll(ctx context.Context) ([]Driver, error)
	Save(ctx context.Context, driver *Driver) error
}

// RunChangeAction classifies a run-registry mutation.
type RunChangeAction string

const (
	RunChangeInsert RunChangeAction = "insert"
	RunChangeUpdate RunChangeAction = "update"
	RunChangeDelete RunChangeAction = "delete"
)

// RunChangeMessage announces that the run registry changed. The payload is
// deliberately thin: subscribers never patch local state from it, they
// re-issue their reads in full.
type RunChangeMessage struct {
	Table     string          `json:"table"`
	Action    RunChangeAction `json:"action"`
	RunID     uuid.UUID       `json:"run_id"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewRunChangeMessage builds a change message for the run registry table.
func NewRunChangeMessage(action RunChangeAction, runID uuid.UUID) RunChangeMessage {
	return RunChangeMessage{
		Table:     "active_delivery_runs",
		Action:    action,
		RunID:     runID,
		Timestamp: time.Now(),
	}
}

// RunChangeNotifier fans run-registry change notifications out to dashboard
// subscribers. Publishing is fire-and-forget: a dropped message delays a
// refresh, it never corrupts state.
type RunChangeNotifier interface {
	Publish(ctx context.Context, msg RunChangeMessage) error
	// Subscribe invokes callback for every change message until ctx is
	// cancelled. It blocks; run it on its own goroutine.
	Subscribe(ctx context.Context, callback func(RunChangeMessage)) error
	Close() error
}
