package dispatch

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

func newRunServiceFixture(t *testing.T) (*RunService, *MockRunRepository, *MockStoreRepository, *MockRunChangeNotifier, *MockEventPublisher) {
	t.Helper()
	runRepo := new(MockRunRepository)
	storeRepo := new(MockStoreRepository)
	notifier := new(MockRunChangeNotifier)
	bus := new(MockEventPublisher)
	svc := NewRunService(runRepo, storeRepo, notifier, bus, zap.NewNop(), domain.TruckTypeBox)
	return svc, runRepo, storeRepo, notifier, bus
}

func testStore(t *testing.T, name string) *domain.Store {
	t.Helper()
	store, err := domain.NewStore(name, "827")
	require.NoError(t, err)
	return store
}

func pendingRun(t *testing.T) *domain.DeliveryRun {
	t.Helper()
	run, err := domain.NewDeliveryRun(uuid.New(), "Cheviot", "827", "Morning Runs", domain.TruckTypeBox)
	require.NoError(t, err)
	run.ClearDomainEvents()
	return run
}

func TestRunService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("registers run with derived type and default truck", func(t *testing.T) {
		svc, runRepo, storeRepo, notifier, bus := newRunServiceFixture(t)
		store := testStore(t, "Cheviot")

		storeRepo.On("FindByID", ctx, store.ID).Return(store, nil)
		runRepo.On("Save", ctx, mock.AnythingOfType("*dispatch.DeliveryRun")).Return(nil)
		bus.On("Publish", ctx, mock.Anything).Return(nil)
		notifier.On("Publish", ctx, mock.MatchedBy(func(msg domain.RunChangeMessage) bool {
			return msg.Action == domain.RunChangeInsert && msg.Table == "active_delivery_runs"
		})).Return(nil)

		resp, err := svc.Create(ctx, CreateRunRequest{
			StoreID:          store.ID,
			StoreName:        "Cheviot",
			DepartmentNumber: "827",
			SlotLabel:        "Morning Runs",
		})

		require.NoError(t, err)
		assert.Equal(t, "Morning", resp.RunType)
		assert.Equal(t, domain.TruckTypeBox, resp.TruckType)
		assert.Equal(t, string(domain.RunStatusPending), resp.Status)
		assert.Nil(t, resp.StartTime)
		runRepo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("explicit truck type wins over the default", func(t *testing.T) {
		svc, runRepo, storeRepo, notifier, bus := newRunServiceFixture(t)
		store := testStore(t, "Cheviot")

		storeRepo.On("FindByID", ctx, store.ID).Return(store, nil)
		runRepo.On("Save", ctx, mock.Anything).Return(nil)
		bus.On("Publish", ctx, mock.Anything).Return(nil)
		notifier.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := svc.Create(ctx, CreateRunRequest{
			StoreID:   store.ID,
			StoreName: "Cheviot",
			SlotLabel: "ADC",
			TruckType: domain.TruckTypeTrailer,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.TruckTypeTrailer, resp.TruckType)
	})

	t.Run("unknown store is a single not-found failure", func(t *testing.T) {
		svc, runRepo, storeRepo, _, _ := newRunServiceFixture(t)
		storeID := uuid.New()

		storeRepo.On("FindByID", ctx, storeID).Return(nil, shared.ErrNotFound)

		resp, err := svc.Create(ctx, CreateRunRequest{
			StoreID:   storeID,
			StoreName: "Nowhere",
			SlotLabel: "Morning Runs",
		})

		require.Error(t, err)
		assert.Nil(t, resp)
		runRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save failure leaves no notification behind", func(t *testing.T) {
		svc, runRepo, storeRepo, notifier, _ := newRunServiceFixture(t)
		store := testStore(t, "Cheviot")

		storeRepo.On("FindByID", ctx, store.ID).Return(store, nil)
		runRepo.On("Save", ctx, mock.Anything).Return(assert.AnError)

		resp, err := svc.Create(ctx, CreateRunRequest{
			StoreID:   store.ID,
			StoreName: "Cheviot",
			SlotLabel: "Morning Runs",
		})

		require.Error(t, err)
		assert.Nil(t, resp)
		notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("notifier failure does not fail the registration", func(t *testing.T) {
		svc, runRepo, storeRepo, notifier, bus := newRunServiceFixture(t)
		store := testStore(t, "Cheviot")

		storeRepo.On("FindByID", ctx, store.ID).Return(store, nil)
		runRepo.On("Save", ctx, mock.Anything).Return(nil)
		bus.On("Publish", ctx, mock.Anything).Return(nil)
		notifier.On("Publish", ctx, mock.Anything).Return(assert.AnError)

		resp, err := svc.Create(ctx, CreateRunRequest{
			StoreID:   store.ID,
			StoreName: "Cheviot",
			SlotLabel: "Morning Runs",
		})

		require.NoError(t, err)
		assert.NotNil(t, resp)
	})
}

func TestRunService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("advances a pending run to loading and notifies", func(t *testing.T) {
		svc, runRepo, _, notifier, bus := newRunServiceFixture(t)
		run := pendingRun(t)

		runRepo.On("FindByID", ctx, run.ID).Return(run, nil)
		runRepo.On("Save", ctx, run).Return(nil)
		bus.On("Publish", ctx, mock.Anything).Return(nil)
		notifier.On("Publish", ctx, mock.MatchedBy(func(msg domain.RunChangeMessage) bool {
			return msg.Action == domain.RunChangeUpdate && msg.RunID == run.ID
		})).Return(nil)

		resp, err := svc.UpdateStatus(ctx, run.ID, domain.RunStatusLoading)

		require.NoError(t, err)
		assert.Equal(t, string(domain.RunStatusLoading), resp.Status)
		assert.NotNil(t, resp.StartTime)
		notifier.AssertExpectations(t)
	})

	t.Run("invalid transition surfaces without saving", func(t *testing.T) {
		svc, runRepo, _, notifier, _ := newRunServiceFixture(t)
		run := pendingRun(t)

		runRepo.On("FindByID", ctx, run.ID).Return(run, nil)

		resp, err := svc.UpdateStatus(ctx, run.ID, domain.RunStatusComplete)

		require.Error(t, err)
		assert.Nil(t, resp)
		runRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestRunService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels and notifies", func(t *testing.T) {
		svc, runRepo, _, notifier, bus := newRunServiceFixture(t)
		run := pendingRun(t)

		runRepo.On("FindByID", ctx, run.ID).Return(run, nil)
		runRepo.On("Save", ctx, run).Return(nil)
		bus.On("Publish", ctx, mock.Anything).Return(nil)
		notifier.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := svc.Cancel(ctx, run.ID)

		require.NoError(t, err)
		assert.Equal(t, string(domain.RunStatusCancelled), resp.Status)
	})
}

func TestRunService_AssignDriver(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns and notifies", func(t *testing.T) {
		svc, runRepo, _, notifier, _ := newRunServiceFixture(t)
		run := pendingRun(t)
		driverID := uuid.New()

		runRepo.On("FindByID", ctx, run.ID).Return(run, nil)
		runRepo.On("Save", ctx, run).Return(nil)
		notifier.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := svc.AssignDriver(ctx, run.ID, driverID)

		require.NoError(t, err)
		require.NotNil(t, resp.DriverID)
		assert.Equal(t, driverID, *resp.DriverID)
	})
}

func TestRunService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and publishes a delete notification", func(t *testing.T) {
		svc, runRepo, _, notifier, _ := newRunServiceFixture(t)
		run := pendingRun(t)

		runRepo.On("FindByID", ctx, run.ID).Return(run, nil)
		runRepo.On("Delete", ctx, run.ID).Return(nil)
		notifier.On("Publish", ctx, mock.MatchedBy(func(msg domain.RunChangeMessage) bool {
			return msg.Action == domain.RunChangeDelete && msg.RunID == run.ID
		})).Return(nil)

		require.NoError(t, svc.Delete(ctx, run.ID))
		notifier.AssertExpectations(t)
	})

	t.Run("missing run surfaces not found", func(t *testing.T) {
		svc, runRepo, _, _, _ := newRunServiceFixture(t)
		id := uuid.New()

		runRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := svc.Delete(ctx, id)
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}
