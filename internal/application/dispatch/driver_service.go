package dispatch

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
)

// DriverService manages driver reference rows.
type DriverService struct {
	driverRepo domain.DriverRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo domain.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// List returns all drivers.
func (s *DriverService) List(ctx context.Context) ([]DriverResponse, error) {
	drivers, err := s.driverRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToDriverResponses(drivers), nil
}

// Create adds a driver reference row.
func (s *DriverService) Create(ctx context.Context, req CreateDriverRequest) (*DriverResponse, error) {
	driver, err := domain.NewDriver(req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}

	response := ToDriverResponse(driver)
	return &response, nil
}

// SetActive toggles whether a driver can take new runs.
func (s *DriverService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*DriverResponse, error) {
	driver, err := s.driverRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	driver.SetActive(active)

	if err := s.driverRepo.Save(ctx, driver); err != nil {
		return nil, err
	}

	response := ToDriverResponse(driver)
	return &response, nil
}
