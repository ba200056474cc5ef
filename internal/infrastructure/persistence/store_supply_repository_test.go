package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// StoreSupplySQLite is a SQLite-compatible version of StoreSupply for testing
type StoreSupplySQLite struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	StoreID   string `gorm:"uniqueIndex;not null"`
	Sleeves   int
	Caps      int
	Canvases  int
	Totes     int
	Hardlines int
	Softlines int
}

func (StoreSupplySQLite) TableName() string {
	return "store_supplies"
}

func setupStoreSupplyTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&StoreSupplySQLite{})
	require.NoError(t, err)

	return db
}

func TestGormStoreSupplyRepository(t *testing.T) {
	db := setupStoreSupplyTestDB(t)
	repo := NewGormStoreSupplyRepository(db)
	ctx := context.Background()

	t.Run("round-trips par levels", func(t *testing.T) {
		storeID := uuid.New()
		supply, err := dispatch.NewStoreSupply(storeID, dispatch.SupplyQuantities{
			Sleeves: 40, Caps: 40, Canvases: 12, Totes: 8,
		})
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, supply))

		found, err := repo.FindByStoreID(ctx, storeID)
		require.NoError(t, err)
		assert.Equal(t, 40, found.ParLevels.Sleeves)
		assert.Equal(t, 12, found.ParLevels.Canvases)
		assert.Equal(t, 0, found.ParLevels.Hardlines)
	})

	t.Run("save replaces par levels in place", func(t *testing.T) {
		storeID := uuid.New()
		supply, err := dispatch.NewStoreSupply(storeID, dispatch.SupplyQuantities{Sleeves: 10})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, supply))

		supply.SetParLevels(dispatch.SupplyQuantities{Totes: 5})
		require.NoError(t, repo.Save(ctx, supply))

		found, err := repo.FindByStoreID(ctx, storeID)
		require.NoError(t, err)
		assert.Equal(t, 0, found.ParLevels.Sleeves)
		assert.Equal(t, 5, found.ParLevels.Totes)
	})

	t.Run("returns ErrNotFound for store without par levels", func(t *testing.T) {
		found, err := repo.FindByStoreID(ctx, uuid.New())

		assert.Nil(t, found)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindAll returns every par-level row", func(t *testing.T) {
		supplies, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, supplies, 2)
	})
}
