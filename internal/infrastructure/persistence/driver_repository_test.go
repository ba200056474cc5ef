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

// DriverSQLite is a SQLite-compatible version of Driver for testing
type DriverSQLite struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `gorm:"not null"`
	Active    bool
}

func (DriverSQLite) TableName() string {
	return "drivers"
}

func setupDriverTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&DriverSQLite{})
	require.NoError(t, err)

	return db
}

func TestGormDriverRepository_SaveAndFind(t *testing.T) {
	db := setupDriverTestDB(t)
	repo := NewGormDriverRepository(db)
	ctx := context.Background()

	t.Run("round-trips a driver", func(t *testing.T) {
		driver, err := dispatch.NewDriver("Sam Kessler")
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, driver))

		found, err := repo.FindByID(ctx, driver.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sam Kessler", found.Name)
		assert.True(t, found.Active)
	})

	t.Run("persists active toggle", func(t *testing.T) {
		driver, err := dispatch.NewDriver("Lee Morgan")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, driver))

		driver.SetActive(false)
		require.NoError(t, repo.Save(ctx, driver))

		found, err := repo.FindByID(ctx, driver.ID)
		require.NoError(t, err)
		assert.False(t, found.Active)
	})

	t.Run("returns ErrNotFound for unknown ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())

		assert.Nil(t, found)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormDriverRepository_FindAll(t *testing.T) {
	db := setupDriverTestDB(t)
	repo := NewGormDriverRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Riley Bauer", "Alex Chen", "Morgan Diaz"} {
		driver, err := dispatch.NewDriver(name)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, driver))
	}

	t.Run("orders drivers by name ascending", func(t *testing.T) {
		drivers, err := repo.FindAll(ctx)
		require.NoError(t, err)

		require.Len(t, drivers, 3)
		assert.Equal(t, "Alex Chen", drivers[0].Name)
		assert.Equal(t, "Morgan Diaz", drivers[1].Name)
		assert.Equal(t, "Riley Bauer", drivers[2].Name)
	})
}
