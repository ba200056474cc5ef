package dispatch

import (
	"context"
	"time"

	domain "github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// CountService appends container count facts. Counts are never updated in
// place; a store may report several batches a day and they sum up.
type CountService struct {
	countRepo domain.ContainerCountRepository
	storeRepo domain.StoreRepository
}

// NewCountService creates a new CountService.
func NewCountService(countRepo domain.ContainerCountRepository, storeRepo domain.StoreRepository) *CountService {
	return &CountService{
		countRepo: countRepo,
		storeRepo: storeRepo,
	}
}

// Record appends a count fact for a store. CountDate defaults to today.
func (s *CountService) Record(ctx context.Context, req RecordCountRequest) (*CountResponse, error) {
	if _, err := s.storeRepo.FindByID(ctx, req.StoreID); err != nil {
		return nil, err
	}

	countDate := time.Now()
	if req.CountDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.CountDate, time.Local)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Count date must be formatted as 2006-01-02")
		}
		countDate = parsed
	}

	count, err := domain.NewContainerCount(req.StoreID, countDate, req.Quantities())
	if err != nil {
		return nil, err
	}

	if err := s.countRepo.Save(ctx, count); err != nil {
		return nil, err
	}

	response := ToCountResponse(count)
	return &response, nil
}
