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

// StoreSQLite is a SQLite-compatible version of Store for testing
type StoreSQLite struct {
	ID               string `gorm:"primaryKey"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Name             string `gorm:"not null"`
	DepartmentNumber string
	Active           bool
}

func (StoreSQLite) TableName() string {
	return "stores"
}

func setupStoreTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&StoreSQLite{})
	require.NoError(t, err)

	return db
}

func TestGormStoreRepository_SaveAndFind(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormStoreRepository(db)
	ctx := context.Background()

	t.Run("round-trips a store", func(t *testing.T) {
		store, err := dispatch.NewStore("Cheviot", "827")
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, store))

		found, err := repo.FindByID(ctx, store.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cheviot", found.Name)
		assert.Equal(t, "827", found.DepartmentNumber)
		assert.True(t, found.Active)
	})

	t.Run("finds store by name", func(t *testing.T) {
		store, err := dispatch.NewStore("Tri-County", "830")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, store))

		found, err := repo.FindByName(ctx, "Tri-County")
		require.NoError(t, err)
		assert.Equal(t, store.ID, found.ID)
	})

	t.Run("returns ErrNotFound for unknown name", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "Nowhere")

		assert.Nil(t, found)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns ErrNotFound for unknown ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())

		assert.Nil(t, found)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStoreRepository_FindAll(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormStoreRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Western Hills", "Cheviot", "Harrison"} {
		store, err := dispatch.NewStore(name, "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, store))
	}

	t.Run("orders stores by name ascending", func(t *testing.T) {
		stores, err := repo.FindAll(ctx)
		require.NoError(t, err)

		require.Len(t, stores, 3)
		assert.Equal(t, "Cheviot", stores[0].Name)
		assert.Equal(t, "Harrison", stores[1].Name)
		assert.Equal(t, "Western Hills", stores[2].Name)
	})
}
