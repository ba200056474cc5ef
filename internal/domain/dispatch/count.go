package dispatch

import (
	"time"

	"github.com/google/uuid"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// ContainerCount is an append-only fact: a batch of containers counted for a
// store on a civil date. Multiple counts per store and date are legal and sum
// up in the deficit calculation.
type ContainerCount struct {
	shared.BaseEntity

	StoreID    uuid.UUID
	CountDate  time.Time `gorm:"type:date"`
	Quantities SupplyQuantities `gorm:"embedded"`
}

// TableName specifies the database table name
func (ContainerCount) TableName() string {
	return "daily_container_counts"
}

// NewContainerCount records a count fact for a store. The date is truncated
// to its civil day; the time of day never participates in deficit math.
func NewContainerCount(storeID uuid.UUID, countDate time.Time, quantities SupplyQuantities) (*ContainerCount, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Store ID is required")
	}
	if countDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Count date is required")
	}

	return &ContainerCount{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		CountDate:  TruncateToDate(countDate),
		Quantities: quantities,
	}, nil
}

// TruncateToDate drops the time-of-day component, keeping the civil date in
// the time's own location.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two instants fall on the same civil date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
