package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
	"github.com/jaymarand/ovgi-dispatch/internal/infrastructure/telemetry"
)

// RunService owns the run-registry write path: registration, lifecycle
// transitions, driver assignment and removal. Every successful mutation
// publishes a thin change notification so dashboards re-read.
type RunService struct {
	runRepo          domain.RunRepository
	storeRepo        domain.StoreRepository
	notifier         domain.RunChangeNotifier
	eventBus         shared.EventPublisher
	logger           *zap.Logger
	defaultTruckType string
}

// NewRunService creates a RunService. defaultTruckType applies when a
// registration request does not name one.
func NewRunService(
	runRepo domain.RunRepository,
	storeRepo domain.StoreRepository,
	notifier domain.RunChangeNotifier,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
	defaultTruckType string,
) *RunService {
	if defaultTruckType == "" {
		defaultTruckType = domain.TruckTypeBox
	}
	return &RunService{
		runRepo:          runRepo,
		storeRepo:        storeRepo,
		notifier:         notifier,
		eventBus:         eventBus,
		logger:           logger,
		defaultTruckType: defaultTruckType,
	}
}

// Create registers a delivery run. The run type is derived from the slot
// label; the store must exist. Failure surfaces as a single domain error
// with no partial state.
func (s *RunService) Create(ctx context.Context, req CreateRunRequest) (*RunResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "run", "create")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrStoreID, req.StoreID.String(),
		telemetry.SpanAttrStoreName, req.StoreName,
	)

	store, err := s.storeRepo.FindByID(ctx, req.StoreID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	truckType := req.TruckType
	if truckType == "" {
		truckType = s.defaultTruckType
	}

	run, err := domain.NewDeliveryRun(store.ID, req.StoreName, req.DepartmentNumber, req.SlotLabel, truckType)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.runRepo.Save(ctx, run); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrRunID, run.ID.String())

	s.publishEvents(ctx, run)
	s.notifyChange(ctx, domain.RunChangeInsert, run.ID)

	s.logger.Info("delivery run registered",
		zap.String("run_id", run.ID.String()),
		zap.String("store", run.StoreName),
		zap.String("run_type", run.RunType))

	response := ToRunResponse(run)
	return &response, nil
}

// UpdateStatus moves a run to the given lifecycle state. Transitions are
// externally driven; the domain enforces linearity and stamps timestamps.
func (s *RunService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RunStatus) (*RunResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "run", "update_status")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrRunID, id.String(),
		telemetry.SpanAttrRunStatus, string(status),
	)

	run, err := s.runRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := run.TransitionTo(status); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.runRepo.Save(ctx, run); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishEvents(ctx, run)
	s.notifyChange(ctx, domain.RunChangeUpdate, run.ID)

	response := ToRunResponse(run)
	return &response, nil
}

// Cancel aborts a run from any non-terminal state.
func (s *RunService) Cancel(ctx context.Context, id uuid.UUID) (*RunResponse, error) {
	run, err := s.runRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := run.Cancel(); err != nil {
		return nil, err
	}

	if err := s.runRepo.Save(ctx, run); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, run)
	s.notifyChange(ctx, domain.RunChangeUpdate, run.ID)

	response := ToRunResponse(run)
	return &response, nil
}

// AssignDriver attaches a driver to a run.
func (s *RunService) AssignDriver(ctx context.Context, id, driverID uuid.UUID) (*RunResponse, error) {
	run, err := s.runRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := run.AssignDriver(driverID); err != nil {
		return nil, err
	}

	if err := s.runRepo.Save(ctx, run); err != nil {
		return nil, err
	}

	s.notifyChange(ctx, domain.RunChangeUpdate, run.ID)

	response := ToRunResponse(run)
	return &response, nil
}

// Delete removes a run from the registry entirely.
func (s *RunService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.runRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.runRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifyChange(ctx, domain.RunChangeDelete, id)
	return nil
}

// GetByID retrieves a single run.
func (s *RunService) GetByID(ctx context.Context, id uuid.UUID) (*RunResponse, error) {
	run, err := s.runRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToRunResponse(run)
	return &response, nil
}

// ListForDate returns runs created on the given civil date, newest first.
func (s *RunService) ListForDate(ctx context.Context, date time.Time) ([]RunResponse, error) {
	runs, err := s.runRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return ToRunResponses(runs), nil
}

// publishEvents drains the aggregate's domain events onto the bus.
// Non-blocking: a failed publish never rolls back the write.
func (s *RunService) publishEvents(ctx context.Context, run *domain.DeliveryRun) {
	events := run.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events",
			zap.String("run_id", run.ID.String()),
			zap.Error(err))
	}
	run.ClearDomainEvents()
}

// notifyChange publishes a fire-and-forget registry change notification.
// A dropped notification delays a dashboard refresh; it never corrupts state.
func (s *RunService) notifyChange(ctx context.Context, action domain.RunChangeAction, runID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	msg := domain.NewRunChangeMessage(action, runID)
	if err := s.notifier.Publish(ctx, msg); err != nil {
		s.logger.Warn("failed to publish run change notification",
			zap.String("run_id", runID.String()),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
