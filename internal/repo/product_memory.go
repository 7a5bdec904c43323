package repo

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/product-store/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

// Insert adds a new product and assigns it the next ID.
func (r *InMemoryProductRepository) Insert(_ context.Context, product models.Product) (models.Product, error) {
	if product.Quantity < 0 || product.Quantity > models.MaxQuantity {
		return models.Product{}, ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// Delete removes every product matching m and reports how many were removed.
func (r *InMemoryProductRepository) Delete(_ context.Context, m NameMatch) (int, error) {
	if err := m.validate(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.products[:0]
	deleted := 0
	for _, p := range r.products {
		if m.matches(p) {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	r.products = kept
	return deleted, nil
}

// FindByNamePrefix returns products whose name starts with prefix, ignoring case.
func (r *InMemoryProductRepository) FindByNamePrefix(_ context.Context, prefix string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := []models.Product{}
	for _, p := range r.products {
		if hasPrefixFold(p.Name, prefix) {
			found = append(found, p)
		}
	}
	return found, nil
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// Stats summarizes the stored products.
func (r *InMemoryProductRepository) Stats(_ context.Context) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s Stats
	for _, p := range r.products {
		s.TotalProducts++
		s.TotalQuantity += p.Quantity
		if p.Quantity == 0 {
			s.OutOfStock++
		}
	}
	return s, nil
}

// Clear removes every product. IDs keep increasing.
func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	r.products = []models.Product{}
	r.mu.Unlock()
}
