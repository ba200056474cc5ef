package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	domain "github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// =============================================================================
// Mock repositories
// =============================================================================

type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryRun), args.Error(1)
}

func (m *MockRunRepository) FindByDate(ctx context.Context, date time.Time) ([]domain.DeliveryRun, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryRun), args.Error(1)
}

func (m *MockRunRepository) Save(ctx context.Context, run *domain.DeliveryRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *MockStoreRepository) FindAll(ctx context.Context) ([]domain.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByName(ctx context.Context, name string) (*domain.Store, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *MockStoreRepository) Save(ctx context.Context, store *domain.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

type MockStoreSupplyRepository struct {
	mock.Mock
}

func (m *MockStoreSupplyRepository) FindByStoreID(ctx context.Context, storeID uuid.UUID) (*domain.StoreSupply, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreSupply), args.Error(1)
}

func (m *MockStoreSupplyRepository) FindAll(ctx context.Context) ([]domain.StoreSupply, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoreSupply), args.Error(1)
}

func (m *MockStoreSupplyRepository) Save(ctx context.Context, supply *domain.StoreSupply) error {
	args := m.Called(ctx, supply)
	return args.Error(0)
}

type MockContainerCountRepository struct {
	mock.Mock
}

func (m *MockContainerCountRepository) FindByDate(ctx context.Context, date time.Time) ([]domain.ContainerCount, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContainerCount), args.Error(1)
}

func (m *MockContainerCountRepository) FindByStoreAndDate(ctx context.Context, storeID uuid.UUID, date time.Time) ([]domain.ContainerCount, error) {
	args := m.Called(ctx, storeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContainerCount), args.Error(1)
}

func (m *MockContainerCountRepository) Save(ctx context.Context, count *domain.ContainerCount) error {
	args := m.Called(ctx, count)
	return args.Error(0)
}

type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindAll(ctx context.Context) ([]domain.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Driver), args.Error(1)
}

func (m *MockDriverRepository) Save(ctx context.Context, driver *domain.Driver) error {
	args := m.Called(ctx, driver)
	return args.Error(0)
}

// =============================================================================
// Mock notifier and event bus
// =============================================================================

type MockRunChangeNotifier struct {
	mock.Mock
}

func (m *MockRunChangeNotifier) Publish(ctx context.Context, msg domain.RunChangeMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockRunChangeNotifier) Subscribe(ctx context.Context, callback func(domain.RunChangeMessage)) error {
	args := m.Called(ctx, callback)
	return args.Error(0)
}

func (m *MockRunChangeNotifier) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
