package inventory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/repository"
)

// Manager owns the inventory store and the bill ledger. All mutations go
// through it, every successful mutation is persisted before it returns, and
// one mutex serializes the whole read-check-mutate-persist sequence so two
// bills can never both pass the stock check against a stale quantity.
//
// When persistence fails the in-memory mutation is rolled back before the
// error surfaces; memory and disk never diverge after a failed operation.
type Manager struct {
	mu      sync.Mutex
	store   *store
	ledger  *ledger
	nextID  int64
	gateway repository.Store
	logger  *zap.Logger
}

// NewManager loads the persisted state through the gateway and returns a
// ready manager.
func NewManager(ctx context.Context, gateway repository.Store, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	products, nextID, err := gateway.LoadInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	bills, err := gateway.LoadBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bills: %w", err)
	}

	// Guard against counter files written before a product with a higher id.
	for _, p := range products {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}

	logger.Info("inventory loaded",
		zap.Int("products", len(products)),
		zap.Int("bills", len(bills)),
		zap.Int64("next_product_id", nextID))

	return &Manager{
		store:   newStore(products),
		ledger:  newLedger(bills),
		nextID:  nextID,
		gateway: gateway,
		logger:  logger,
	}, nil
}

// AddProduct validates the fields, assigns the next product id and persists
// the grown inventory. Ids come from a monotonically increasing counter that
// is persisted with the inventory, so an id freed by removal is never handed
// out again.
func (m *Manager) AddProduct(ctx context.Context, name string, quantity int, price decimal.Decimal) (models.Product, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return models.Product{}, fmt.Errorf("%w: product name must not be empty", models.ErrValidation)
	case quantity < 0:
		return models.Product{}, fmt.Errorf("%w: quantity %d must not be negative", models.ErrValidation, quantity)
	case price.IsNegative():
		return models.Product{}, fmt.Errorf("%w: price %s must not be negative", models.ErrValidation, price)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	product := models.Product{
		ID:       m.nextID,
		Name:     name,
		Quantity: quantity,
		Price:    price,
	}
	if err := m.store.Add(product); err != nil {
		return models.Product{}, err
	}
	m.nextID++

	if err := m.gateway.SaveInventory(ctx, m.store.Items(), m.nextID); err != nil {
		m.store.Remove(product.ID)
		m.nextID--
		m.logger.Error("add product not persisted, rolled back", zap.Int64("product_id", product.ID), zap.Error(err))
		return models.Product{}, fmt.Errorf("persist inventory: %w", err)
	}

	m.logger.Info("product added",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("quantity", product.Quantity))
	return product, nil
}

// RemoveProduct drops the product with the given id and persists the shrunk
// inventory. Removing an absent id is not an error.
func (m *Manager) RemoveProduct(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.store.snapshot()
	m.store.Remove(id)

	if err := m.gateway.SaveInventory(ctx, m.store.Items(), m.nextID); err != nil {
		m.store.restore(before)
		m.logger.Error("remove product not persisted, rolled back", zap.Int64("product_id", id), zap.Error(err))
		return fmt.Errorf("persist inventory: %w", err)
	}

	m.logger.Info("product removed", zap.Int64("product_id", id))
	return nil
}

// CreateBill sells quantity units of the identified product: it checks the
// stock, decrements it, appends the bill and persists both stores before
// returning. The bill carries snapshot copies of the product name and the
// total price; later renames or price changes do not touch it.
func (m *Manager) CreateBill(ctx context.Context, productID int64, quantity int) (models.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product, err := m.store.ByID(productID)
	if err != nil {
		return models.Bill{}, err
	}
	if quantity <= 0 {
		return models.Bill{}, fmt.Errorf("%w: non-positive quantity %d", models.ErrValidation, quantity)
	}
	if quantity > product.Quantity {
		return models.Bill{}, fmt.Errorf("%w: insufficient stock for %q: want %d, have %d",
			models.ErrValidation, product.Name, quantity, product.Quantity)
	}

	productsBefore := m.store.snapshot()
	billsBefore := m.ledger.snapshot()

	if err := m.store.UpdateQuantity(productID, product.Quantity-quantity); err != nil {
		return models.Bill{}, err
	}

	// Bills are never deleted, so the count-based id stays unique.
	bill := models.Bill{
		ID:          int64(m.ledger.Len()) + 1,
		ProductName: product.Name,
		Quantity:    quantity,
		TotalPrice:  product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	m.ledger.Append(bill)

	if err := m.gateway.SaveState(ctx, m.store.Items(), m.nextID, m.ledger.All()); err != nil {
		m.store.restore(productsBefore)
		m.ledger.restore(billsBefore)
		m.logger.Error("bill not persisted, rolled back",
			zap.Int64("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err))
		return models.Bill{}, fmt.Errorf("persist state: %w", err)
	}

	m.logger.Info("bill created",
		zap.Int64("bill_id", bill.ID),
		zap.String("product", bill.ProductName),
		zap.Int("quantity", bill.Quantity),
		zap.String("total", bill.TotalPrice.String()))
	return bill, nil
}

// Product returns the product with the given id.
func (m *Manager) Product(id int64) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.ByID(id)
}

// ListProducts returns a read-only snapshot of the inventory in insertion
// order.
func (m *Manager) ListProducts() []models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Items()
}

// ListBills returns a read-only snapshot of the ledger, oldest first.
func (m *Manager) ListBills() []models.Bill {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.All()
}
