// Package jsonfile persists the inventory and the bill ledger as two
// independent JSON files, the default on-disk layout.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/repository"
)

// Store implements repository.Store over two flat files. Every save writes a
// temporary file in the same directory and renames it over the target, so a
// crash mid-write never leaves a truncated store behind.
type Store struct {
	inventoryPath string
	billsPath     string
	logger        *zap.Logger
}

// New builds a file-backed store rooted at dir, creating dir if needed.
func New(dir, inventoryFile, billsFile string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir %s: %v", models.ErrStorage, dir, err)
	}
	return &Store{
		inventoryPath: filepath.Join(dir, inventoryFile),
		billsPath:     filepath.Join(dir, billsFile),
		logger:        logger,
	}, nil
}

// LoadInventory reads the inventory file. A missing file is an empty store.
func (s *Store) LoadInventory(ctx context.Context) ([]models.Product, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(s.inventoryPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 1, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read %s: %v", models.ErrStorage, s.inventoryPath, err)
	}
	return repository.DecodeInventory(data)
}

// SaveInventory atomically overwrites the inventory file.
func (s *Store) SaveInventory(ctx context.Context, products []models.Product, nextID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := repository.EncodeInventory(products, nextID)
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	return s.writeAtomic(s.inventoryPath, data)
}

// LoadBills reads the ledger file. A missing file is an empty ledger.
func (s *Store) LoadBills(ctx context.Context) ([]models.Bill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.billsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", models.ErrStorage, s.billsPath, err)
	}
	return repository.DecodeBills(data)
}

// SaveBills atomically overwrites the ledger file.
func (s *Store) SaveBills(ctx context.Context, bills []models.Bill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := repository.EncodeBills(bills)
	if err != nil {
		return fmt.Errorf("encode bills: %w", err)
	}
	return s.writeAtomic(s.billsPath, data)
}

// SaveState writes the inventory before the ledger. When the ledger write
// fails the previous inventory file is put back, so an error return never
// leaves half the pair on disk. With two independent files the pair still
// cannot be committed in one step; the boltdb backend exists for deployments
// that need the paired write to be transactional.
func (s *Store) SaveState(ctx context.Context, products []models.Product, nextID int64, bills []models.Bill) error {
	prev, readErr := os.ReadFile(s.inventoryPath)
	if readErr != nil && !errors.Is(readErr, fs.ErrNotExist) {
		return fmt.Errorf("%w: read %s: %v", models.ErrStorage, s.inventoryPath, readErr)
	}

	if err := s.SaveInventory(ctx, products, nextID); err != nil {
		return err
	}

	if err := s.SaveBills(ctx, bills); err != nil {
		s.undoInventoryWrite(prev, readErr == nil)
		return err
	}
	return nil
}

// undoInventoryWrite restores the inventory file captured before a failed
// paired write. Best effort: an undo failure is logged, not returned, since
// the caller already has the primary error.
func (s *Store) undoInventoryWrite(prev []byte, existed bool) {
	var err error
	if existed {
		err = s.writeAtomic(s.inventoryPath, prev)
	} else if err = os.Remove(s.inventoryPath); errors.Is(err, fs.ErrNotExist) {
		err = nil
	}
	if err != nil {
		s.logger.Error("failed to restore inventory file after ledger write failure",
			zap.String("path", s.inventoryPath), zap.Error(err))
	}
}

// Close is a no-op; the store holds no open handles between operations.
func (s *Store) Close() error { return nil }

func (s *Store) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file in %s: %v", models.ErrStorage, dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", models.ErrStorage, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", models.ErrStorage, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", models.ErrStorage, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename %s over %s: %v", models.ErrStorage, tmpName, path, err)
	}

	s.logger.Debug("store file written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
