package dispatch

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// StoreService manages store reference rows and their par levels.
type StoreService struct {
	storeRepo  domain.StoreRepository
	supplyRepo domain.StoreSupplyRepository
}

// NewStoreService creates a new StoreService.
func NewStoreService(storeRepo domain.StoreRepository, supplyRepo domain.StoreSupplyRepository) *StoreService {
	return &StoreService{
		storeRepo:  storeRepo,
		supplyRepo: supplyRepo,
	}
}

// List returns all stores ordered by display name ascending.
func (s *StoreService) List(ctx context.Context) ([]StoreResponse, error) {
	stores, err := s.storeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToStoreResponses(stores), nil
}

// GetByID retrieves a single store.
func (s *StoreService) GetByID(ctx context.Context, id uuid.UUID) (*StoreResponse, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToStoreResponse(store)
	return &response, nil
}

// Create adds a store reference row. Names are unique.
func (s *StoreService) Create(ctx context.Context, req CreateStoreRequest) (*StoreResponse, error) {
	existing, err := s.storeRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Store with this name already exists")
	}

	store, err := domain.NewStore(req.Name, req.DepartmentNumber)
	if err != nil {
		return nil, err
	}

	if err := s.storeRepo.Save(ctx, store); err != nil {
		return nil, err
	}

	response := ToStoreResponse(store)
	return &response, nil
}

// SetParLevels upserts the store's par-level row. The store keeps at most
// one such row; repeated calls replace the six targets wholesale.
func (s *StoreService) SetParLevels(ctx context.Context, storeID uuid.UUID, req SetParLevelsRequest) (*ParLevelsResponse, error) {
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		return nil, err
	}

	supply, err := s.supplyRepo.FindByStoreID(ctx, storeID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		supply, err = domain.NewStoreSupply(storeID, req.Quantities())
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		supply.SetParLevels(req.Quantities())
	}

	if err := s.supplyRepo.Save(ctx, supply); err != nil {
		return nil, err
	}

	return &ParLevelsResponse{
		StoreID:   supply.StoreID,
		ParLevels: supply.ParLevels,
		UpdatedAt: supply.UpdatedAt,
	}, nil
}

// GetParLevels returns the store's par levels, zeroes when none are set.
func (s *StoreService) GetParLevels(ctx context.Context, storeID uuid.UUID) (*ParLevelsResponse, error) {
	supply, err := s.supplyRepo.FindByStoreID(ctx, storeID)
	if errors.Is(err, shared.ErrNotFound) {
		return &ParLevelsResponse{StoreID: storeID}, nil
	}
	if err != nil {
		return nil, err
	}

	return &ParLevelsResponse{
		StoreID:   supply.StoreID,
		ParLevels: supply.ParLevels,
		UpdatedAt: supply.UpdatedAt,
	}, nil
}
