package repository

import (
	"context"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"
)

// Store is the persistence gateway the inventory manager writes through.
//
// Loading from an absent store yields empty collections, not an error.
// A store that is present but undecodable fails with models.ErrCorruptData;
// environment faults (permissions, disk, connectivity) fail with
// models.ErrStorage.
type Store interface {
	// LoadInventory returns the persisted products, in their persisted
	// order, together with the next product id counter.
	LoadInventory(ctx context.Context) ([]models.Product, int64, error)

	// SaveInventory overwrites the persisted inventory atomically.
	SaveInventory(ctx context.Context, products []models.Product, nextID int64) error

	// LoadBills returns the persisted ledger, oldest first.
	LoadBills(ctx context.Context) ([]models.Bill, error)

	// SaveBills overwrites the persisted ledger atomically.
	SaveBills(ctx context.Context, bills []models.Bill) error

	// SaveState persists inventory and ledger together. Billing uses this
	// so backends that support it can commit both in one transaction.
	SaveState(ctx context.Context, products []models.Product, nextID int64, bills []models.Bill) error

	// Close releases any resources held by the store.
	Close() error
}
