package handler

import (
	"github.com/gin-gonic/gin"

	appdispatch "github.com/jaymarand/ovgi-dispatch/internal/application/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/interfaces/http/middleware"
)

// StoreHandler handles store reference API endpoints
type StoreHandler struct {
	BaseHandler
	storeService *appdispatch.StoreService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *appdispatch.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// List godoc
// @ID           listStores
// @Summary      List stores
// @Description  Returns all stores ordered by name.
// @Tags         stores
// @Produce      json
// @Success      200 {object} APIResponse[[]appdispatch.StoreResponse]
// @Router       /dispatch/stores [get]
func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.storeService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stores)
}

// Get godoc
// @ID           getStore
// @Summary      Get a store
// @Tags         stores
// @Produce      json
// @Param        id path string true "Store ID"
// @Success      200 {object} APIResponse[appdispatch.StoreResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /dispatch/stores/{id} [get]
func (h *StoreHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	store, err := h.storeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, store)
}

// Create godoc
// @ID           createStore
// @Summary      Add a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        request body appdispatch.CreateStoreRequest true "Store"
// @Success      201 {object} APIResponse[appdispatch.StoreResponse]
// @Failure      409 {object} ErrorResponse
// @Router       /dispatch/stores [post]
func (h *StoreHandler) Create(c *gin.Context) {
	var req appdispatch.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	store, err := h.storeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, store)
}

// GetParLevels godoc
// @ID           getStoreParLevels
// @Summary      Get a store's par levels
// @Tags         stores
// @Produce      json
// @Param        id path string true "Store ID"
// @Success      200 {object} APIResponse[appdispatch.ParLevelsResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /dispatch/stores/{id}/par-levels [get]
func (h *StoreHandler) GetParLevels(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	levels, err := h.storeService.GetParLevels(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, levels)
}

// SetParLevels godoc
// @ID           setStoreParLevels
// @Summary      Replace a store's par levels
// @Description  Replaces all six container par levels in one write.
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        id path string true "Store ID"
// @Param        request body appdispatch.SetParLevelsRequest true "Par levels"
// @Success      200 {object} APIResponse[appdispatch.ParLevelsResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /dispatch/stores/{id}/par-levels [put]
func (h *StoreHandler) SetParLevels(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req appdispatch.SetParLevelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	levels, err := h.storeService.SetParLevels(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, levels)
}
