package dispatch

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// Store is a reference entity for a retail location served by dispatch.
// Par levels live on StoreSupply, not here.
type Store struct {
	shared.BaseEntity

	Name             string
	DepartmentNumber string
	Active           bool
}

// TableName specifies the database table name
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a store reference row.
func NewStore(name, departmentNumber string) (*Store, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Store name is required")
	}

	return &Store{
		BaseEntity:       shared.NewBaseEntity(),
		Name:             strings.TrimSpace(name),
		DepartmentNumber: strings.TrimSpace(departmentNumber),
		Active:           true,
	}, nil
}

// Deactivate removes the store from dispatch without deleting history.
func (s *Store) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
}

// StoreSupply holds the par levels for one store: the target quantity of
// each supply category the store should receive per day. At most one row
// per store.
type StoreSupply struct {
	shared.BaseEntity

	StoreID   uuid.UUID
	ParLevels SupplyQuantities `gorm:"embedded"`
}

// TableName specifies the database table name
func (StoreSupply) TableName() string {
	return "store_supplies"
}

// NewStoreSupply creates the par-level row for a store.
func NewStoreSupply(storeID uuid.UUID, parLevels SupplyQuantities) (*StoreSupply, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Store ID is required")
	}

	return &StoreSupply{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		ParLevels:  parLevels,
	}, nil
}

// SetParLevels replaces the par levels wholesale.
func (s *StoreSupply) SetParLevels(parLevels SupplyQuantities) {
	s.ParLevels = parLevels
	s.UpdatedAt = time.Now()
}
