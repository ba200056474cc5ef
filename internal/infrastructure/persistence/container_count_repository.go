package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
)

// GormContainerCountRepository implements ContainerCountRepository using GORM
type GormContainerCountRepository struct {
	db *gorm.DB
}

// NewGormContainerCountRepository creates a new GormContainerCountRepository
func NewGormContainerCountRepository(db *gorm.DB) *GormContainerCountRepository {
	return &GormContainerCountRepository{db: db}
}

// FindByDate returns every count fact recorded for the given civil date
func (r *GormContainerCountRepository) FindByDate(ctx context.Context, date time.Time) ([]dispatch.ContainerCount, error) {
	dayStart := dispatch.TruncateToDate(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var counts []dispatch.ContainerCount
	if err := r.db.WithContext(ctx).
		Where("count_date >= ? AND count_date < ?", dayStart, dayEnd).
		Order("created_at ASC").
		Find(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// FindByStoreAndDate returns the count facts for one store on the given civil date
func (r *GormContainerCountRepository) FindByStoreAndDate(ctx context.Context, storeID uuid.UUID, date time.Time) ([]dispatch.ContainerCount, error) {
	dayStart := dispatch.TruncateToDate(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var counts []dispatch.ContainerCount
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND count_date >= ? AND count_date < ?", storeID, dayStart, dayEnd).
		Order("created_at ASC").
		Find(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// Save appends a count fact
func (r *GormContainerCountRepository) Save(ctx context.Context, count *dispatch.ContainerCount) error {
	return r.db.WithContext(ctx).Save(count).Error
}

// Ensure GormContainerCountRepository implements ContainerCountRepository
var _ dispatch.ContainerCountRepository = (*GormContainerCountRepository)(nil)
