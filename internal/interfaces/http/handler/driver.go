package handler

import (
	"github.com/gin-gonic/gin"

	appdispatch "github.com/jaymarand/ovgi-dispatch/internal/application/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/interfaces/http/middleware"
)

// DriverHandler handles driver reference API endpoints
type DriverHandler struct {
	BaseHandler
	driverService *appdispatch.DriverService
}

// NewDriverHandler creates a new DriverHandler
func NewDriverHandler(driverService *appdispatch.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// List godoc
// @ID           listDrivers
// @Summary      List drivers
// @Tags         drivers
// @Produce      json
// @Success      200 {object} APIResponse[[]appdispatch.DriverResponse]
// @Router       /dispatch/drivers [get]
func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.driverService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, drivers)
}

// Create godoc
// @ID           createDriver
// @Summary      Add a driver
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Param        request body appdispatch.CreateDriverRequest true "Driver"
// @Success      201 {object} APIResponse[appdispatch.DriverResponse]
// @Router       /dispatch/drivers [post]
func (h *DriverHandler) Create(c *gin.Context) {
	var req appdispatch.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, driver)
}

// SetActive godoc
// @ID           setDriverActive
// @Summary      Toggle driver availability
// @Tags         drivers
// @Accept       json
// @Produce      json
// @Param        id path string true "Driver ID"
// @Param        request body appdispatch.SetDriverActiveRequest true "Availability"
// @Success      200 {object} APIResponse[appdispatch.DriverResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /dispatch/drivers/{id}/active [put]
func (h *DriverHandler) SetActive(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req appdispatch.SetDriverActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	driver, err := h.driverService.SetActive(c.Request.Context(), id, req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, driver)
}
