package dispatch

import (
	"time"

	"github.com/google/uuid"
)

// RunSupplyNeeds is one row of the dispatch board: a run joined with the
// signed supply deficit of its store. Needed values are par minus counted
// and go negative when a store counted past its par level.
type RunSupplyNeeds struct {
	RunID            uuid.UUID
	StoreID          uuid.UUID
	StoreName        string
	DepartmentNumber string
	RunType          string
	TruckType        string
	Status           RunStatus
	DriverID         *uuid.UUID

	StartTime    *time.Time
	PreloadTime  *time.Time
	DepartTime   *time.Time
	CompleteTime *time.Time

	CreatedAt time.Time
	Needed    SupplyQuantities
}

// ComputeRunSupplyNeeds joins runs with count facts and par levels and
// returns one deficit row per run, preserving the order runs were given in.
//
// The function is pure: it holds no date logic (callers pass facts already
// scoped to the report date), reads nothing, writes nothing, and the same
// inputs always produce the same rows. A store with no par-level row
// contributes par 0; a store with no count facts contributes a counted sum
// of 0. Deficits are never clamped.
func ComputeRunSupplyNeeds(runs []DeliveryRun, counts []ContainerCount, supplies []StoreSupply) []RunSupplyNeeds {
	countedByStore := make(map[uuid.UUID]SupplyQuantities, len(counts))
	for _, c := range counts {
		countedByStore[c.StoreID] = countedByStore[c.StoreID].Add(c.Quantities)
	}

	parByStore := make(map[uuid.UUID]SupplyQuantities, len(supplies))
	for _, s := range supplies {
		parByStore[s.StoreID] = s.ParLevels
	}

	rows := make([]RunSupplyNeeds, 0, len(runs))
	for _, run := range runs {
		// Missing map entries coalesce to the zero value on both sides.
		needed := parByStore[run.StoreID].Sub(countedByStore[run.StoreID])

		rows = append(rows, RunSupplyNeeds{
			RunID:            run.ID,
			StoreID:          run.StoreID,
			StoreName:        run.StoreName,
			DepartmentNumber: run.DepartmentNumber,
			RunType:          run.RunType,
			TruckType:        run.TruckType,
			Status:           run.Status,
			DriverID:         run.DriverID,
			StartTime:        run.StartTime,
			PreloadTime:      run.PreloadTime,
			DepartTime:       run.DepartTime,
			CompleteTime:     run.CompleteTime,
			CreatedAt:        run.CreatedAt,
			Needed:           needed,
		})
	}
	return rows
}
