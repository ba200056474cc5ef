package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// GormRunRepository implements RunRepository using GORM
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// FindByID finds a delivery run by its ID
func (r *GormRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*dispatch.DeliveryRun, error) {
	var run dispatch.DeliveryRun
	if err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &run, nil
}

// FindByDate finds runs registered on the given civil date, newest first.
// The half-open range keeps the comparison index-friendly on both postgres
// and sqlite.
func (r *GormRunRepository) FindByDate(ctx context.Context, date time.Time) ([]dispatch.DeliveryRun, error) {
	dayStart := dispatch.TruncateToDate(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var runs []dispatch.DeliveryRun
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Order("created_at DESC").
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Save creates or updates a delivery run
func (r *GormRunRepository) Save(ctx context.Context, run *dispatch.DeliveryRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

// Delete removes a delivery run
func (r *GormRunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&dispatch.DeliveryRun{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormRunRepository implements RunRepository
var _ dispatch.RunRepository = (*GormRunRepository)(nil)
