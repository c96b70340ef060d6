package port

import (
	"github.com/nikolayk812/storefront-state/internal/domain"
	"github.com/shopspring/decimal"
)

// CartStore is the contract a presentation layer uses to drive a cart.
type CartStore interface {
	AddItem(item domain.CartItem)
	RemoveItem(item domain.CartItem)
	ClearCart()

	Items() []domain.CartItem
	TotalPrice() decimal.Decimal
	ItemCount() int
	Snapshot() domain.Cart
	Subscribe() (<-chan domain.Cart, func())
}

// SessionStore is the contract a presentation layer uses to drive a session.
type SessionStore interface {
	Login(username string)
	Logout()
	SetPreferDarkMode(prefer bool)

	Username() string
	IsLoggedIn() bool
	Snapshot() domain.Session
	Subscribe() (<-chan domain.Session, func())
}
