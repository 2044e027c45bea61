// Package boltdb persists the inventory and the bill ledger inside a single
// bbolt file, so the paired write billing needs commits in one transaction
// instead of spanning two independent files.
package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/repository"
)

var (
	bucketProducts = []byte("products")
	bucketBills    = []byte("bills")
	bucketMeta     = []byte("meta")

	keyNextProductID = []byte("next_product_id")
)

// Store implements repository.Store over one bbolt database file.
type Store struct {
	db     *bolt.DB
	logger *zap.Logger
}

// Open opens (creating if absent) the bolt file at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: open bolt file %s: %v", models.ErrStorage, path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketProducts, bucketBills, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init bolt buckets: %v", models.ErrStorage, err)
	}
	return &Store{db: db, logger: logger}, nil
}

// LoadInventory reads all products in key order. Keys are big-endian ids, so
// key order is assignment order, which is insertion order.
func (s *Store) LoadInventory(ctx context.Context) ([]models.Product, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var products []models.Product
	nextID := int64(1)
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketMeta).Get(keyNextProductID); v != nil {
			if len(v) != 8 {
				return fmt.Errorf("%w: next product id has %d bytes", models.ErrCorruptData, len(v))
			}
			nextID = int64(binary.BigEndian.Uint64(v))
		}
		return tx.Bucket(bucketProducts).ForEach(func(_, v []byte) error {
			p, err := repository.UnmarshalProduct(v)
			if err != nil {
				return err
			}
			products = append(products, p)
			return nil
		})
	})
	if err != nil {
		return nil, 0, err
	}
	return products, nextID, nil
}

// SaveInventory replaces the products bucket and counter in one transaction.
func (s *Store) SaveInventory(ctx context.Context, products []models.Product, nextID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.update(func(tx *bolt.Tx) error {
		return writeInventory(tx, products, nextID)
	})
}

// LoadBills reads the ledger in key order, oldest first.
func (s *Store) LoadBills(ctx context.Context) ([]models.Bill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var bills []models.Bill
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBills).ForEach(func(_, v []byte) error {
			b, err := repository.UnmarshalBill(v)
			if err != nil {
				return err
			}
			bills = append(bills, b)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return bills, nil
}

// SaveBills replaces the bills bucket in one transaction.
func (s *Store) SaveBills(ctx context.Context, bills []models.Bill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.update(func(tx *bolt.Tx) error {
		return writeBills(tx, bills)
	})
}

// SaveState commits the inventory and the ledger in a single transaction;
// either both land on disk or neither does.
func (s *Store) SaveState(ctx context.Context, products []models.Product, nextID int64, bills []models.Bill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.update(func(tx *bolt.Tx) error {
		if err := writeInventory(tx, products, nextID); err != nil {
			return err
		}
		return writeBills(tx, bills)
	})
	if err != nil {
		return err
	}
	s.logger.Debug("state committed", zap.Int("products", len(products)), zap.Int("bills", len(bills)))
	return nil
}

// Close closes the underlying bolt file.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) update(fn func(tx *bolt.Tx) error) error {
	if err := s.db.Update(fn); err != nil {
		return fmt.Errorf("%w: bolt update: %v", models.ErrStorage, err)
	}
	return nil
}

func writeInventory(tx *bolt.Tx, products []models.Product, nextID int64) error {
	if err := tx.DeleteBucket(bucketProducts); err != nil {
		return err
	}
	b, err := tx.CreateBucket(bucketProducts)
	if err != nil {
		return err
	}
	for _, p := range products {
		data, err := repository.MarshalProduct(p)
		if err != nil {
			return err
		}
		if err := b.Put(itob(p.ID), data); err != nil {
			return err
		}
	}
	return tx.Bucket(bucketMeta).Put(keyNextProductID, itob(nextID))
}

func writeBills(tx *bolt.Tx, bills []models.Bill) error {
	if err := tx.DeleteBucket(bucketBills); err != nil {
		return err
	}
	b, err := tx.CreateBucket(bucketBills)
	if err != nil {
		return err
	}
	for _, bill := range bills {
		data, err := repository.MarshalBill(bill)
		if err != nil {
			return err
		}
		if err := b.Put(itob(bill.ID), data); err != nil {
			return err
		}
	}
	return nil
}

func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
