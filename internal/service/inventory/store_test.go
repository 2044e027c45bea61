package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"
)

func product(id int64, name string, qty int) models.Product {
	return models.Product{ID: id, Name: name, Quantity: qty, Price: decimal.NewFromInt(1)}
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := newStore(nil)
	require.NoError(t, s.Add(product(3, "c", 1)))
	require.NoError(t, s.Add(product(1, "a", 1)))
	require.NoError(t, s.Add(product(2, "b", 1)))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []int64{3, 1, 2}, []int64{items[0].ID, items[1].ID, items[2].ID})

	p, err := s.ByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
}

func TestStoreRejectsDuplicateID(t *testing.T) {
	s := newStore(nil)
	require.NoError(t, s.Add(product(1, "a", 1)))
	assert.ErrorIs(t, s.Add(product(1, "b", 1)), models.ErrValidation)
	assert.Equal(t, 1, s.Len())
}

func TestStoreRemoveAbsentIsNoOp(t *testing.T) {
	s := newStore([]models.Product{product(1, "a", 1)})
	s.Remove(99)
	assert.Equal(t, 1, s.Len())

	s.Remove(1)
	assert.Equal(t, 0, s.Len())
}

func TestStoreLookupFailures(t *testing.T) {
	s := newStore(nil)

	_, err := s.ByID(7)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.ByIndex(0)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.ByIndex(-1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStoreUpdateQuantity(t *testing.T) {
	s := newStore([]models.Product{product(1, "a", 5)})

	require.NoError(t, s.UpdateQuantity(1, 0))
	p, err := s.ByID(1)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)

	assert.ErrorIs(t, s.UpdateQuantity(1, -1), models.ErrValidation)
	assert.ErrorIs(t, s.UpdateQuantity(9, 3), models.ErrNotFound)
}

func TestLedgerAppendOnlyOrder(t *testing.T) {
	l := newLedger(nil)
	l.Append(models.Bill{ID: 1, ProductName: "a", Quantity: 1, TotalPrice: decimal.NewFromInt(1)})
	l.Append(models.Bill{ID: 2, ProductName: "b", Quantity: 2, TotalPrice: decimal.NewFromInt(2)})

	all := l.All()
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(2), all[1].ID)

	// The returned slice is a copy.
	all[0].ProductName = "mutated"
	assert.Equal(t, "a", l.All()[0].ProductName)
}
