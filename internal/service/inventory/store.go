package inventory

import (
	"fmt"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"
)

// store holds the products in insertion order. That order is the only one
// the caller ever sees, and index-based selection in the billing flow relies
// on it staying stable between a listing and the following action.
type store struct {
	products []models.Product
}

func newStore(products []models.Product) *store {
	return &store{products: products}
}

// Add appends a product. The id must not already be present.
func (s *store) Add(p models.Product) error {
	if _, err := s.ByID(p.ID); err == nil {
		return fmt.Errorf("%w: product id %d already present", models.ErrValidation, p.ID)
	}
	s.products = append(s.products, p)
	return nil
}

// Remove drops the product with the given id. Removing an absent id is a
// no-op.
func (s *store) Remove(id int64) {
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// ByIndex returns the product at position i in insertion order.
func (s *store) ByIndex(i int) (models.Product, error) {
	if i < 0 || i >= len(s.products) {
		return models.Product{}, fmt.Errorf("%w: product index %d", models.ErrNotFound, i)
	}
	return s.products[i], nil
}

// ByID returns the product with the given id.
func (s *store) ByID(id int64) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("%w: product id %d", models.ErrNotFound, id)
}

// UpdateQuantity sets the stock level of the identified product. Stock can
// never go negative.
func (s *store) UpdateQuantity(id int64, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity %d must not be negative", models.ErrValidation, quantity)
	}
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i].Quantity = quantity
			return nil
		}
	}
	return fmt.Errorf("%w: product id %d", models.ErrNotFound, id)
}

// Items returns a copy of the products in insertion order.
func (s *store) Items() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len reports how many products the store holds.
func (s *store) Len() int {
	return len(s.products)
}

// snapshot captures the current contents for rollback after a failed save.
func (s *store) snapshot() []models.Product {
	return s.Items()
}

// restore replaces the contents with a previously taken snapshot.
func (s *store) restore(products []models.Product) {
	s.products = products
}
