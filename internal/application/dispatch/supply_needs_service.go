package dispatch

import (
	"context"
	"time"

	domain "github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
)

// SupplyNeedsService serves the dispatch board read: runs for a report date
// joined with signed supply deficits. Every invocation recomputes from the
// repositories in full; nothing is cached server-side, so a failed read
// never poisons a later one.
type SupplyNeedsService struct {
	runRepo    domain.RunRepository
	countRepo  domain.ContainerCountRepository
	supplyRepo domain.StoreSupplyRepository
}

// NewSupplyNeedsService creates a new SupplyNeedsService.
func NewSupplyNeedsService(
	runRepo domain.RunRepository,
	countRepo domain.ContainerCountRepository,
	supplyRepo domain.StoreSupplyRepository,
) *SupplyNeedsService {
	return &SupplyNeedsService{
		runRepo:    runRepo,
		countRepo:  countRepo,
		supplyRepo: supplyRepo,
	}
}

// ListForDate returns one row per run created on the report date, ordered
// run creation time descending, with deficits computed only over count
// facts of that same date.
func (s *SupplyNeedsService) ListForDate(ctx context.Context, date time.Time) ([]SupplyNeedsResponse, error) {
	runs, err := s.runRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	counts, err := s.countRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	supplies, err := s.supplyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := domain.ComputeRunSupplyNeeds(runs, counts, supplies)

	responses := make([]SupplyNeedsResponse, len(rows))
	for i, row := range rows {
		responses[i] = ToSupplyNeedsResponse(row)
	}
	return responses, nil
}
