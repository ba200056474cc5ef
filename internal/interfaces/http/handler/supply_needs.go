package handler

import (
	"github.com/gin-gonic/gin"

	appdispatch "github.com/jaymarand/ovgi-dispatch/internal/application/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/interfaces/http/middleware"
)

// SupplyNeedsHandler serves the dispatch-board read model
type SupplyNeedsHandler struct {
	BaseHandler
	needsService *appdispatch.SupplyNeedsService
}

// NewSupplyNeedsHandler creates a new SupplyNeedsHandler
func NewSupplyNeedsHandler(needsService *appdispatch.SupplyNeedsService) *SupplyNeedsHandler {
	return &SupplyNeedsHandler{needsService: needsService}
}

// List godoc
// @ID           listSupplyNeeds
// @Summary      List runs with supply deficits
// @Description  Returns one row per run for the given civil date, each carrying the signed deficit (par minus counted) of its store. Defaults to today.
// @Tags         supply-needs
// @Produce      json
// @Param        date query string false "Civil date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[[]appdispatch.SupplyNeedsResponse]
// @Router       /dispatch/supply-needs [get]
func (h *SupplyNeedsHandler) List(c *gin.Context) {
	date, err := getDateParam(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	rows, err := h.needsService.ListForDate(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, rows, int64(len(rows)), date.Format("2006-01-02"))
}
