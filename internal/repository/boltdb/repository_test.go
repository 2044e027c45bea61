package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "stockmate.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFreshFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	products, nextID, err := s.LoadInventory(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Equal(t, int64(1), nextID)

	bills, err := s.LoadBills(ctx)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestInventoryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	products := []models.Product{
		{ID: 1, Name: "Widget", Quantity: 10, Price: decimal.RequireFromString("2.50")},
		{ID: 2, Name: "Freebie", Quantity: 0, Price: decimal.Zero},
	}
	require.NoError(t, s.SaveInventory(ctx, products, 3))

	loaded, nextID, err := s.LoadInventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), nextID)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Widget", loaded[0].Name)
	assert.True(t, loaded[0].Price.Equal(decimal.RequireFromString("2.50")))
	assert.Equal(t, 0, loaded[1].Quantity)
}

func TestSaveStateWritesBothCollections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	products := []models.Product{{ID: 1, Name: "Widget", Quantity: 6, Price: decimal.RequireFromString("2.50")}}
	bills := []models.Bill{{ID: 1, ProductName: "Widget", Quantity: 4, TotalPrice: decimal.RequireFromString("10.00")}}

	require.NoError(t, s.SaveState(ctx, products, 2, bills))

	loadedProducts, nextID, err := s.LoadInventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), nextID)
	require.Len(t, loadedProducts, 1)
	assert.Equal(t, 6, loadedProducts[0].Quantity)

	loadedBills, err := s.LoadBills(ctx)
	require.NoError(t, err)
	require.Len(t, loadedBills, 1)
	assert.True(t, loadedBills[0].TotalPrice.Equal(decimal.RequireFromString("10.00")))
}

func TestSaveReplacesPreviousContents(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveInventory(ctx, []models.Product{
		{ID: 1, Name: "Old", Quantity: 1, Price: decimal.NewFromInt(1)},
		{ID: 2, Name: "Gone", Quantity: 1, Price: decimal.NewFromInt(1)},
	}, 3))
	require.NoError(t, s.SaveInventory(ctx, []models.Product{
		{ID: 3, Name: "New", Quantity: 2, Price: decimal.NewFromInt(2)},
	}, 4))

	loaded, _, err := s.LoadInventory(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "New", loaded[0].Name)
}

func TestStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stockmate.db")
	ctx := context.Background()

	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveState(ctx,
		[]models.Product{{ID: 1, Name: "Widget", Quantity: 6, Price: decimal.RequireFromString("2.50")}},
		2,
		[]models.Bill{{ID: 1, ProductName: "Widget", Quantity: 4, TotalPrice: decimal.RequireFromString("10.00")}}))
	require.NoError(t, s.Close())

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	products, nextID, err := reopened.LoadInventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), nextID)
	require.Len(t, products, 1)

	bills, err := reopened.LoadBills(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "Widget", bills[0].ProductName)
}
