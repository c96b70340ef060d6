// Package catalog holds the read-only product list a storefront offers.
package catalog

import (
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront-state/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrEmpty         = errors.New("catalog is empty")
	ErrEmptyID       = errors.New("product id is empty")
	ErrDuplicateID   = errors.New("duplicate product id")
	ErrNegativePrice = errors.New("product price is negative")
)

// Catalog is immutable once built and safe for concurrent reads.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

func New(products []domain.Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, ErrEmpty
	}

	c := &Catalog{
		products: make([]domain.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}

	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product[%d]: %w", i, ErrEmptyID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product[%s]: %w", p.ID, ErrNegativePrice)
		}
		if _, ok := c.byID[p.ID]; ok {
			return nil, fmt.Errorf("product[%s]: %w", p.ID, ErrDuplicateID)
		}

		c.byID[p.ID] = i
		c.products[i] = p
	}

	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultProducts())
	if err != nil {
		panic(fmt.Sprintf("catalog.Default: %v", err))
	}
	return c
}

// Products returns a copy of the products in catalog order.
func (c *Catalog) Products() []domain.Product {
	products := make([]domain.Product, len(c.products))
	copy(products, c.products)
	return products
}

func (c *Catalog) Lookup(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func defaultProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Coffee", Price: decimal.RequireFromString("4.99"), Emoji: "☕️"},
		{ID: "2", Name: "Croissant", Price: decimal.RequireFromString("3.49"), Emoji: "🥐"},
		{ID: "3", Name: "Sandwich", Price: decimal.RequireFromString("8.99"), Emoji: "🥪"},
		{ID: "4", Name: "Salad", Price: decimal.RequireFromString("7.49"), Emoji: "🥗"},
	}
}
