package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// GormStoreSupplyRepository implements StoreSupplyRepository using GORM
type GormStoreSupplyRepository struct {
	db *gorm.DB
}

// NewGormStoreSupplyRepository creates a new GormStoreSupplyRepository
func NewGormStoreSupplyRepository(db *gorm.DB) *GormStoreSupplyRepository {
	return &GormStoreSupplyRepository{db: db}
}

// FindByStoreID finds the par-level row for a store
func (r *GormStoreSupplyRepository) FindByStoreID(ctx context.Context, storeID uuid.UUID) (*dispatch.StoreSupply, error) {
	var supply dispatch.StoreSupply
	if err := r.db.WithContext(ctx).First(&supply, "store_id = ?", storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supply, nil
}

// FindAll returns the par-level rows for every store
func (r *GormStoreSupplyRepository) FindAll(ctx context.Context) ([]dispatch.StoreSupply, error) {
	var supplies []dispatch.StoreSupply
	if err := r.db.WithContext(ctx).Find(&supplies).Error; err != nil {
		return nil, err
	}
	return supplies, nil
}

// Save creates or updates a par-level row
func (r *GormStoreSupplyRepository) Save(ctx context.Context, supply *dispatch.StoreSupply) error {
	return r.db.WithContext(ctx).Save(supply).Error
}

// Ensure GormStoreSupplyRepository implements StoreSupplyRepository
var _ dispatch.StoreSupplyRepository = (*GormStoreSupplyRepository)(nil)
