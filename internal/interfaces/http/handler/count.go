package handler

import (
	"github.com/gin-gonic/gin"

	appdispatch "github.com/jaymarand/ovgi-dispatch/internal/application/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/interfaces/http/middleware"
)

// CountHandler handles container count API endpoints
type CountHandler struct {
	BaseHandler
	countService *appdispatch.CountService
}

// NewCountHandler creates a new CountHandler
func NewCountHandler(countService *appdispatch.CountService) *CountHandler {
	return &CountHandler{countService: countService}
}

// Record godoc
// @ID           recordCount
// @Summary      Record a container count
// @Description  Appends a count fact for a store. Counts are never updated in place; same-day facts for a store sum together.
// @Tags         counts
// @Accept       json
// @Produce      json
// @Param        request body appdispatch.RecordCountRequest true "Count fact"
// @Success      201 {object} APIResponse[appdispatch.CountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /dispatch/counts [post]
func (h *CountHandler) Record(c *gin.Context) {
	var req appdispatch.RecordCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	count, err := h.countService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, count)
}
