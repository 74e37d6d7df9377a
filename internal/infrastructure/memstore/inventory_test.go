package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visionscan/backend/internal/domain"
)

func TestInventoryStore_Create(t *testing.T) {
	store := NewInventoryStore()
	ctx := context.Background()

	record, err := store.Create(ctx, domain.InventoryRecord{
		SKU:     "RP-01",
		Name:    "Red Pen",
		Price:   1.50,
		Stock:   10,
		Aliases: []string{"pen"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "RP-01", record.SKU)
	assert.False(t, record.CreatedAt.IsZero())

	t.Run("rejects duplicate sku case-insensitively", func(t *testing.T) {
		_, err := store.Create(ctx, domain.InventoryRecord{SKU: "rp-01", Name: "Other Pen"})
		assert.ErrorIs(t, err, domain.ErrSKUExists)
	})
}

func TestInventoryStore_GetByID(t *testing.T) {
	store := NewInventoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, domain.InventoryRecord{SKU: "NB-01", Name: "Notebook"})
	require.NoError(t, err)

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Notebook", got.Name)

	_, err = store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrInventoryNotFound)
}

func TestInventoryStore_ListAndGetAll(t *testing.T) {
	store := NewInventoryStore()
	ctx := context.Background()

	for _, name := range []string{"Cola", "Apple", "Notebook"} {
		_, err := store.Create(ctx, domain.InventoryRecord{SKU: "sku-" + name, Name: name})
		require.NoError(t, err)
	}

	t.Run("GetAll returns name-ordered snapshot", func(t *testing.T) {
		all, err := store.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Apple", all[0].Name)
		assert.Equal(t, "Cola", all[1].Name)
		assert.Equal(t, "Notebook", all[2].Name)
	})

	t.Run("List paginates with total", func(t *testing.T) {
		page, total, err := store.List(ctx, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, page, 2)
		assert.Equal(t, "Apple", page[0].Name)

		page, total, err = store.List(ctx, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, page, 1)
		assert.Equal(t, "Notebook", page[0].Name)
	})

	t.Run("List beyond the end is empty", func(t *testing.T) {
		page, total, err := store.List(ctx, 10, 100)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, page)
	})
}

func TestInventoryStore_Update(t *testing.T) {
	store := NewInventoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, domain.InventoryRecord{
		SKU:   "RP-01",
		Name:  "Red Pen",
		Price: 1.50,
		Stock: 10,
	})
	require.NoError(t, err)

	newName := "Crimson Pen"
	newAliases := []string{"pen", "red"}
	updated, err := store.Update(ctx, created.ID, domain.InventoryUpdate{
		Name:    &newName,
		Aliases: &newAliases,
	})

	require.NoError(t, err)
	assert.Equal(t, "Crimson Pen", updated.Name)
	assert.Equal(t, newAliases, updated.Aliases)
	assert.Equal(t, 1.50, updated.Price, "unset fields keep their value")
	assert.Equal(t, 10, updated.Stock)

	_, err = store.Update(ctx, "missing", domain.InventoryUpdate{Name: &newName})
	assert.ErrorIs(t, err, domain.ErrInventoryNotFound)
}

func TestInventoryStore_AdjustStock(t *testing.T) {
	store := NewInventoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, domain.InventoryRecord{SKU: "RP-01", Name: "Red Pen", Stock: 5})
	require.NoError(t, err)

	updated, err := store.AdjustStock(ctx, created.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Stock)

	_, err = store.AdjustStock(ctx, created.ID, -5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock, "failed adjustment must not change stock")
}

func TestInventoryStore_SnapshotIsACopy(t *testing.T) {
	store := NewInventoryStore()
	ctx := context.Background()

	_, err := store.Create(ctx, domain.InventoryRecord{SKU: "RP-01", Name: "Red Pen"})
	require.NoError(t, err)

	snapshot, err := store.GetAll(ctx)
	require.NoError(t, err)
	snapshot[0].Name = "mutated"

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Red Pen", all[0].Name)
}
