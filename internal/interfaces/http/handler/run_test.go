package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appdispatch "github.com/jaymarand/ovgi-dispatch/internal/application/dispatch"
	domain "github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
	"github.com/jaymarand/ovgi-dispatch/internal/interfaces/http/dto"
)

// fakeRunRepo is an in-memory RunRepository for handler tests.
type fakeRunRepo struct {
	mu   sync.Mutex
	runs map[uuid.UUID]*domain.DeliveryRun
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: make(map[uuid.UUID]*domain.DeliveryRun)}
}

func (r *fakeRunRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.DeliveryRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *run
	return &copied, nil
}

func (r *fakeRunRepo) FindByDate(_ context.Context, date time.Time) ([]domain.DeliveryRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.DeliveryRun
	for _, run := range r.runs {
		if domain.SameDate(run.CreatedAt, date) {
			out = append(out, *run)
		}
	}
	return out, nil
}

func (r *fakeRunRepo) Save(_ context.Context, run *domain.DeliveryRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *run
	r.runs[run.ID] = &copied
	return nil
}

func (r *fakeRunRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.runs, id)
	return nil
}

// fakeStoreRepo serves a fixed set of stores.
type fakeStoreRepo struct {
	stores map[uuid.UUID]*domain.Store
}

func (r *fakeStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Store, error) {
	store, ok := r.stores[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return store, nil
}

func (r *fakeStoreRepo) FindAll(_ context.Context) ([]domain.Store, error) {
	var out []domain.Store
	for _, s := range r.stores {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeStoreRepo) FindByName(_ context.Context, name string) (*domain.Store, error) {
	for _, s := range r.stores {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStoreRepo) Save(_ context.Context, store *domain.Store) error {
	r.stores[store.ID] = store
	return nil
}

// recordingNotifier captures published change messages.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []domain.RunChangeMessage
}

func (n *recordingNotifier) Publish(_ context.Context, msg domain.RunChangeMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return nil
}

func (n *recordingNotifier) Subscribe(ctx context.Context, _ func(domain.RunChangeMessage)) error {
	<-ctx.Done()
	return ctx.Err()
}

func (n *recordingNotifier) Close() error { return nil }

func (n *recordingNotifier) actions() []domain.RunChangeAction {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.RunChangeAction, len(n.messages))
	for i, m := range n.messages {
		out[i] = m.Action
	}
	return out
}

// nopPublisher discards domain events.
type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...shared.DomainEvent) error { return nil }

type runHandlerFixture struct {
	router   *gin.Engine
	runRepo  *fakeRunRepo
	notifier *recordingNotifier
	storeID  uuid.UUID
}

func newRunHandlerFixture(t *testing.T) *runHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := domain.NewStore("Cheviot", "827")
	require.NoError(t, err)

	runRepo := newFakeRunRepo()
	storeRepo := &fakeStoreRepo{stores: map[uuid.UUID]*domain.Store{store.ID: store}}
	notifier := &recordingNotifier{}

	svc := appdispatch.NewRunService(runRepo, storeRepo, notifier, nopPublisher{}, zap.NewNop(), "")
	h := NewRunHandler(svc)

	router := gin.New()
	router.GET("/runs", h.List)
	router.POST("/runs", h.Create)
	router.GET("/runs/:id", h.Get)
	router.PATCH("/runs/:id/status", h.UpdateStatus)
	router.POST("/runs/:id/cancel", h.Cancel)
	router.PUT("/runs/:id/driver", h.AssignDriver)
	router.DELETE("/runs/:id", h.Delete)

	return &runHandlerFixture{
		router:   router,
		runRepo:  runRepo,
		notifier: notifier,
		storeID:  store.ID,
	}
}

func (f *runHandlerFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *runHandlerFixture) createRun(t *testing.T, slotLabel string) appdispatch.RunResponse {
	t.Helper()
	body := fmt.Sprintf(`{"store_id":%q,"store_name":"Cheviot","department_number":"827","slot_label":%q}`,
		f.storeID, slotLabel)
	w := f.do("POST", "/runs", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data appdispatch.RunResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestRunHandlerCreate(t *testing.T) {
	t.Run("registers a run", func(t *testing.T) {
		f := newRunHandlerFixture(t)
		run := f.createRun(t, "Morning Runs")

		assert.Equal(t, "Cheviot", run.StoreName)
		assert.Equal(t, "Morning", run.RunType)
		assert.Equal(t, "pending", run.Status)
		assert.Equal(t, domain.TruckTypeBox, run.TruckType)
		assert.Equal(t, []domain.RunChangeAction{domain.RunChangeInsert}, f.notifier.actions())
	})

	t.Run("rejects unknown store", func(t *testing.T) {
		f := newRunHandlerFixture(t)
		body := fmt.Sprintf(`{"store_id":%q,"store_name":"Ghost","slot_label":"Morning Runs"}`, uuid.New())
		w := f.do("POST", "/runs", body)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeNotFound)
		assert.Empty(t, f.notifier.actions())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		f := newRunHandlerFixture(t)
		w := f.do("POST", "/runs", `{"store_name":"Cheviot"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeValidation)
	})
}

func TestRunHandlerGet(t *testing.T) {
	f := newRunHandlerFixture(t)
	run := f.createRun(t, "Morning Runs")

	t.Run("returns the run", func(t *testing.T) {
		w := f.do("GET", "/runs/"+run.ID.String(), "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), run.ID.String())
	})

	t.Run("404 for unknown run", func(t *testing.T) {
		w := f.do("GET", "/runs/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("400 for malformed id", func(t *testing.T) {
		w := f.do("GET", "/runs/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRunHandlerList(t *testing.T) {
	f := newRunHandlerFixture(t)
	f.createRun(t, "Morning Runs")
	f.createRun(t, "Afternoon Runs")

	w := f.do("GET", "/runs", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []appdispatch.RunResponse `json:"data"`
		Meta *dto.Meta                 `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
	assert.Equal(t, time.Now().Format("2006-01-02"), resp.Meta.Date)

	t.Run("other dates are empty", func(t *testing.T) {
		w := f.do("GET", "/runs?date=2020-01-01", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Meta *dto.Meta `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(0), resp.Meta.Total)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		w := f.do("GET", "/runs?date=01-01-2020", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRunHandlerUpdateStatus(t *testing.T) {
	t.Run("advances one step", func(t *testing.T) {
		f := newRunHandlerFixture(t)
		run := f.createRun(t, "Morning Runs")

		w := f.do("PATCH", "/runs/"+run.ID.String()+"/status", `{"status":"loading"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data appdispatch.RunResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "loading", resp.Data.Status)
		assert.NotNil(t, resp.Data.StartTime)
	})

	t.Run("rejects skipped steps", func(t *testing.T) {
		f := newRunHandlerFixture(t)
		run := f.createRun(t, "Morning Runs")

		w := f.do("PATCH", "/runs/"+run.ID.String()+"/status", `{"status":"in_transit"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidTransition)
	})

	t.Run("rejects unknown status value", func(t *testing.T) {
		f := newRunHandlerFixture(t)
		run := f.createRun(t, "Morning Runs")

		w := f.do("PATCH", "/runs/"+run.ID.String()+"/status", `{"status":"teleporting"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRunHandlerCancel(t *testing.T) {
	f := newRunHandlerFixture(t)
	run := f.createRun(t, "Morning Runs")

	w := f.do("POST", "/runs/"+run.ID.String()+"/cancel", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data appdispatch.RunResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Data.Status)

	t.Run("cancelling twice fails", func(t *testing.T) {
		w := f.do("POST", "/runs/"+run.ID.String()+"/cancel", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestRunHandlerAssignDriver(t *testing.T) {
	f := newRunHandlerFixture(t)
	run := f.createRun(t, "Morning Runs")
	driverID := uuid.New()

	body := fmt.Sprintf(`{"driver_id":%q}`, driverID)
	w := f.do("PUT", "/runs/"+run.ID.String()+"/driver", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data appdispatch.RunResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.DriverID)
	assert.Equal(t, driverID, *resp.Data.DriverID)
}

func TestRunHandlerDelete(t *testing.T) {
	f := newRunHandlerFixture(t)
	run := f.createRun(t, "Morning Runs")

	w := f.do("DELETE", "/runs/"+run.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do("GET", "/runs/"+run.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t,
		[]domain.RunChangeAction{domain.RunChangeInsert, domain.RunChangeDelete},
		f.notifier.actions())
}
