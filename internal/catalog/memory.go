package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// MemoryCatalog implements Catalog with in-memory storage
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

// NewMemoryCatalog creates a catalog pre-loaded with the given products
func NewMemoryCatalog(products []domain.Product) *MemoryCatalog {
	c := &MemoryCatalog{
		products: make(map[string]*domain.Product, len(products)),
	}
	for i := range products {
		p := products[i]
		c.products[p.ID] = &p
	}
	return c
}

func (c *MemoryCatalog) GetByID(_ context.Context, id string) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, exists := c.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (c *MemoryCatalog) List(_ context.Context) ([]domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		result = append(result, *p)
	}
	// stable listing order for the storefront
	sort.Slice(result, func(i, j int) bool {
		return result[i].Price.LessThan(result[j].Price)
	})
	return result, nil
}

// Upsert replaces or adds a product. Used by admin tooling and tests.
func (c *MemoryCatalog) Upsert(product domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ID] = &product
}
