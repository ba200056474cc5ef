package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// GormDriverRepository implements DriverRepository using GORM
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a new GormDriverRepository
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// FindByID finds a driver by its ID
func (r *GormDriverRepository) FindByID(ctx context.Context, id uuid.UUID) (*dispatch.Driver, error) {
	var driver dispatch.Driver
	if err := r.db.WithContext(ctx).First(&driver, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &driver, nil
}

// FindAll returns all drivers ordered by name
func (r *GormDriverRepository) FindAll(ctx context.Context) ([]dispatch.Driver, error) {
	var drivers []dispatch.Driver
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

// Save creates or updates a driver
func (r *GormDriverRepository) Save(ctx context.Context, driver *dispatch.Driver) error {
	return r.db.WithContext(ctx).Save(driver).Error
}

// Ensure GormDriverRepository implements DriverRepository
var _ dispatch.DriverRepository = (*GormDriverRepository)(nil)
