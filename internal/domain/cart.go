package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type CartItem struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Subtotal is Price multiplied by Quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is a consistent copy of a cart store taken at one point in time.
type Cart struct {
	Items      []CartItem
	TotalPrice decimal.Decimal
	ItemCount  int
	Currency   currency.Unit
}

func (c Cart) Total() Money {
	return Money{Amount: c.TotalPrice, Currency: c.Currency}
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
