package domain

import "github.com/shopspring/decimal"

// Product is an immutable catalog entry.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Emoji string
}

// CartItem returns the line item a presentation layer adds to a cart for p.
func (p Product) CartItem() CartItem {
	return CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: 1,
	}
}
