package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// GormStoreRepository implements StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID finds a store by its ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*dispatch.Store, error) {
	var store dispatch.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// FindAll returns all stores ordered by name
func (r *GormStoreRepository) FindAll(ctx context.Context) ([]dispatch.Store, error) {
	var stores []dispatch.Store
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// FindByName finds a store by its exact name
func (r *GormStoreRepository) FindByName(ctx context.Context, name string) (*dispatch.Store, error) {
	var store dispatch.Store
	if err := r.db.WithContext(ctx).First(&store, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// Save creates or updates a store
func (r *GormStoreRepository) Save(ctx context.Context, store *dispatch.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// Ensure GormStoreRepository implements StoreRepository
var _ dispatch.StoreRepository = (*GormStoreRepository)(nil)
