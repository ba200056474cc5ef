package dispatch

import (
	"time"

	"github.com/google/uuid"

	domain "github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
)

// =============================================================================
// Run DTOs
// =============================================================================

// CreateRunRequest registers a delivery run from the dispatch board.
// TruckType is optional; the configured fleet default applies when omitted.
type CreateRunRequest struct {
	StoreID          uuid.UUID `json:"store_id" binding:"required"`
	StoreName        string    `json:"store_name" binding:"required,min=1,max=200"`
	DepartmentNumber string    `json:"department_number" binding:"max=20"`
	SlotLabel        string    `json:"slot_label" binding:"required,min=1,max=100"`
	TruckType        string    `json:"truck_type" binding:"max=50"`
}

// UpdateRunStatusRequest moves a run to the next lifecycle state.
type UpdateRunStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending loading preloaded in_transit complete cancelled"`
}

// AssignDriverRequest attaches a driver to a run.
type AssignDriverRequest struct {
	DriverID uuid.UUID `json:"driver_id" binding:"required"`
}

// RunResponse represents a delivery run in API responses.
type RunResponse struct {
	ID               uuid.UUID  `json:"id"`
	StoreID          uuid.UUID  `json:"store_id"`
	StoreName        string     `json:"store_name"`
	DepartmentNumber string     `json:"department_number"`
	RunType          string     `json:"run_type"`
	TruckType        string     `json:"truck_type"`
	Status           string     `json:"status"`
	DriverID         *uuid.UUID `json:"driver_id"`
	StartTime        *time.Time `json:"start_time"`
	PreloadTime      *time.Time `json:"preload_time"`
	DepartTime       *time.Time `json:"depart_time"`
	CompleteTime     *time.Time `json:"complete_time"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Version          int        `json:"version"`
}

// ToRunResponse converts a domain DeliveryRun to RunResponse.
func ToRunResponse(r *domain.DeliveryRun) RunResponse {
	return RunResponse{
		ID:               r.ID,
		StoreID:          r.StoreID,
		StoreName:        r.StoreName,
		DepartmentNumber: r.DepartmentNumber,
		RunType:          r.RunType,
		TruckType:        r.TruckType,
		Status:           string(r.Status),
		DriverID:         r.DriverID,
		StartTime:        r.StartTime,
		PreloadTime:      r.PreloadTime,
		DepartTime:       r.DepartTime,
		CompleteTime:     r.CompleteTime,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		Version:          r.Version,
	}
}

// ToRunResponses converts a slice of runs.
func ToRunResponses(runs []domain.DeliveryRun) []RunResponse {
	responses := make([]RunResponse, len(runs))
	for i := range runs {
		responses[i] = ToRunResponse(&runs[i])
	}
	return responses
}

// =============================================================================
// Store DTOs
// =============================================================================

// CreateStoreRequest adds a store reference row.
type CreateStoreRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=200"`
	DepartmentNumber string `json:"department_number" binding:"max=20"`
}

// SetParLevelsRequest replaces a store's par levels wholesale.
type SetParLevelsRequest struct {
	Sleeves   int `json:"sleeves" binding:"gte=0"`
	Caps      int `json:"caps" binding:"gte=0"`
	Canvases  int `json:"canvases" binding:"gte=0"`
	Totes     int `json:"totes" binding:"gte=0"`
	Hardlines int `json:"hardlines" binding:"gte=0"`
	Softlines int `json:"softlines" binding:"gte=0"`
}

// Quantities converts the request into the domain value type.
func (r SetParLevelsRequest) Quantities() domain.SupplyQuantities {
	return domain.SupplyQuantities{
		Sleeves:   r.Sleeves,
		Caps:      r.Caps,
		Canvases:  r.Canvases,
		Totes:     r.Totes,
		Hardlines: r.Hardlines,
		Softlines: r.Softlines,
	}
}

// StoreResponse represents a store in API responses.
type StoreResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	DepartmentNumber string    `json:"department_number"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToStoreResponse converts a domain Store to StoreResponse.
func ToStoreResponse(s *domain.Store) StoreResponse {
	return StoreResponse{
		ID:               s.ID,
		Name:             s.Name,
		DepartmentNumber: s.DepartmentNumber,
		Active:           s.Active,
		CreatedAt:        s.CreatedAt,
	}
}

// ToStoreResponses converts a slice of stores.
func ToStoreResponses(stores []domain.Store) []StoreResponse {
	responses := make([]StoreResponse, len(stores))
	for i := range stores {
		responses[i] = ToStoreResponse(&stores[i])
	}
	return responses
}

// ParLevelsResponse represents a store's par levels.
type ParLevelsResponse struct {
	StoreID   uuid.UUID               `json:"store_id"`
	ParLevels domain.SupplyQuantities `json:"par_levels"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// =============================================================================
// Count DTOs
// =============================================================================

// RecordCountRequest appends a container count fact for a store.
// CountDate defaults to today when omitted (format 2006-01-02).
type RecordCountRequest struct {
	StoreID   uuid.UUID `json:"store_id" binding:"required"`
	CountDate string    `json:"count_date" binding:"omitempty,datetime=2006-01-02"`
	Sleeves   int       `json:"sleeves"`
	Caps      int       `json:"caps"`
	Canvases  int       `json:"canvases"`
	Totes     int       `json:"totes"`
	Hardlines int       `json:"hardlines"`
	Softlines int       `json:"softlines"`
}

// Quantities converts the request into the domain value type.
func (r RecordCountRequest) Quantities() domain.SupplyQuantities {
	return domain.SupplyQuantities{
		Sleeves:   r.Sleeves,
		Caps:      r.Caps,
		Canvases:  r.Canvases,
		Totes:     r.Totes,
		Hardlines: r.Hardlines,
		Softlines: r.Softlines,
	}
}

// CountResponse represents a recorded count fact.
type CountResponse struct {
	ID         uuid.UUID               `json:"id"`
	StoreID    uuid.UUID               `json:"store_id"`
	CountDate  string                  `json:"count_date"`
	Quantities domain.SupplyQuantities `json:"quantities"`
	CreatedAt  time.Time               `json:"created_at"`
}

// ToCountResponse converts a domain ContainerCount to CountResponse.
func ToCountResponse(c *domain.ContainerCount) CountResponse {
	return CountResponse{
		ID:         c.ID,
		StoreID:    c.StoreID,
		CountDate:  c.CountDate.Format("2006-01-02"),
		Quantities: c.Quantities,
		CreatedAt:  c.CreatedAt,
	}
}

// =============================================================================
// Supply needs DTOs
// =============================================================================

// SupplyNeedsResponse is one dispatch-board row: a run with the signed
// deficit of its store for the report date.
type SupplyNeedsResponse struct {
	RunID            uuid.UUID  `json:"run_id"`
	StoreID          uuid.UUID  `json:"store_id"`
	StoreName        string     `json:"store_name"`
	DepartmentNumber string     `json:"department_number"`
	RunType          string     `json:"run_type"`
	TruckType        string     `json:"truck_type"`
	Status           string     `json:"status"`
	DriverID         *uuid.UUID `json:"driver_id"`
	StartTime        *time.Time `json:"start_time"`
	PreloadTime      *time.Time `json:"preload_time"`
	DepartTime       *time.Time `json:"depart_time"`
	CompleteTime     *time.Time `json:"complete_time"`
	CreatedAt        time.Time  `json:"created_at"`

	SleevesNeeded   int `json:"sleeves_needed"`
	CapsNeeded      int `json:"caps_needed"`
	CanvasesNeeded  int `json:"canvases_needed"`
	TotesNeeded     int `json:"totes_needed"`
	HardlinesNeeded int `json:"hardlines_needed"`
	SoftlinesNeeded int `json:"softlines_needed"`
}

// ToSupplyNeedsResponse converts a domain needs row.
func ToSupplyNeedsResponse(row domain.RunSupplyNeeds) SupplyNeedsResponse {
	return SupplyNeedsResponse{
		RunID:            row.RunID,
		StoreID:          row.StoreID,
		StoreName:        row.StoreName,
		DepartmentNumber: row.DepartmentNumber,
		RunType:          row.RunType,
		TruckType:        row.TruckType,
		Status:           string(row.Status),
		DriverID:         row.DriverID,
		StartTime:        row.StartTime,
		PreloadTime:      row.PreloadTime,
		DepartTime:       row.DepartTime,
		CompleteTime:     row.CompleteTime,
		CreatedAt:        row.CreatedAt,
		SleevesNeeded:    row.Needed.Sleeves,
		CapsNeeded:       row.Needed.Caps,
		CanvasesNeeded:   row.Needed.Canvases,
		TotesNeeded:      row.Needed.Totes,
		HardlinesNeeded:  row.Needed.Hardlines,
		SoftlinesNeeded:  row.Needed.Softlines,
	}
}

// =============================================================================
// Driver DTOs
// =============================================================================

// CreateDriverRequest adds a driver reference row.
type CreateDriverRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// SetDriverActiveRequest toggles driver availability.
type SetDriverActiveRequest struct {
	Active bool `json:"active"`
}

// DriverResponse represents a driver in API responses.
type DriverResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDriverResponse converts a domain Driver to DriverResponse.
func ToDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:        d.ID,
		Name:      d.Name,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
	}
}

// ToDriverResponses converts a slice of drivers.
func ToDriverResponses(drivers []domain.Driver) []DriverResponse {
	responses := make([]DriverResponse, len(drivers))
	for i := range drivers {
		responses[i] = ToDriverResponse(&drivers[i])
	}
	return responses
}
