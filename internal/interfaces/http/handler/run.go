package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appdispatch "github.com/jaymarand/ovgi-dispatch/internal/application/dispatch"
	domain "github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/interfaces/http/dto"
	"github.com/jaymarand/ovgi-dispatch/internal/interfaces/http/middleware"
)

// RunHandler handles delivery run API endpoints
type RunHandler struct {
	BaseHandler
	runService *appdispatch.RunService
}

// NewRunHandler creates a new RunHandler
func NewRunHandler(runService *appdispatch.RunService) *RunHandler {
	return &RunHandler{runService: runService}
}

// List godoc
// @ID           listRuns
// @Summary      List delivery runs for a date
// @Description  Returns runs registered on the given civil date, newest first. Defaults to today.
// @Tags         runs
// @Produce      json
// @Param        date query string false "Civil date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[[]appdispatch.RunResponse]
// @Router       /dispatch/runs [get]
func (h *RunHandler) List(c *gin.Context) {
	date, err := getDateParam(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	runs, err := h.runService.ListForDate(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, runs, int64(len(runs)), date.Format("2006-01-02"))
}

// Get godoc
// @ID           getRun
// @Summary      Get a delivery run
// @Tags         runs
// @Produce      json
// @Param        id path string true "Run ID"
// @Success      200 {object} APIResponse[appdispatch.RunResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /dispatch/runs/{id} [get]
func (h *RunHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	run, err := h.runService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, run)
}

// Create godoc
// @ID           createRun
// @Summary      Register a delivery run
// @Description  Registers a run for a store. The run type is derived from the slot label.
// @Tags         runs
// @Accept       json
// @Produce      json
// @Param        request body appdispatch.CreateRunRequest true "Run registration"
// @Success      201 {object} APIResponse[appdispatch.RunResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /dispatch/runs [post]
func (h *RunHandler) Create(c *gin.Context) {
	var req appdispatch.CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	run, err := h.runService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, run)
}

// UpdateStatus godoc
// @ID           updateRunStatus
// @Summary      Advance a run's lifecycle status
// @Description  Moves a run one step forward in its lifecycle. Skipping or reversing steps is rejected.
// @Tags         runs
// @Accept       json
// @Produce      json
// @Param        id path string true "Run ID"
// @Param        request body appdispatch.UpdateRunStatusRequest true "Target status"
// @Success      200 {object} APIResponse[appdispatch.RunResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /dispatch/runs/{id}/status [patch]
func (h *RunHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req appdispatch.UpdateRunStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	run, err := h.runService.UpdateStatus(c.Request.Context(), id, domain.RunStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, run)
}

// Cancel godoc
// @ID           cancelRun
// @Summary      Cancel a delivery run
// @Description  Cancels a run from any non-terminal status.
// @Tags         runs
// @Produce      json
// @Param        id path string true "Run ID"
// @Success      200 {object} APIResponse[appdispatch.RunResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /dispatch/runs/{id}/cancel [post]
func (h *RunHandler) Cancel(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	run, err := h.runService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, run)
}

// AssignDriver godoc
// @ID           assignRunDriver
// @Summary      Assign a driver to a run
// @Tags         runs
// @Accept       json
// @Produce      json
// @Param        id path string true "Run ID"
// @Param        request body appdispatch.AssignDriverRequest true "Driver assignment"
// @Success      200 {object} APIResponse[appdispatch.RunResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /dispatch/runs/{id}/driver [put]
func (h *RunHandler) AssignDriver(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req appdispatch.AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	run, err := h.runService.AssignDriver(c.Request.Context(), id, req.DriverID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, run)
}

// Delete godoc
// @ID           deleteRun
// @Summary      Remove a delivery run from the board
// @Tags         runs
// @Param        id path string true "Run ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /dispatch/runs/{id} [delete]
func (h *RunHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.runService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// bindID binds and parses the :id path parameter. It writes the error
// response itself when binding fails.
func (h *BaseHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
