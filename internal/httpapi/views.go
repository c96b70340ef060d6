package httpapi

import (
	"github.com/nikolayk812/storefront-state/internal/domain"
)

type productView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Emoji string `json:"emoji"`
}

type cartItemView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

type cartView struct {
	Items      []cartItemView `json:"items"`
	TotalPrice string         `json:"totalPrice"`
	ItemCount  int            `json:"itemCount"`
	Currency   string         `json:"currency"`
}

type sessionView struct {
	Username       string `json:"username"`
	IsLoggedIn     bool   `json:"isLoggedIn"`
	PreferDarkMode bool   `json:"preferDarkMode"`
}

const (
	eventCart    = "cart"
	eventSession = "session"
)

type event struct {
	Type    string       `json:"type"`
	Cart    *cartView    `json:"cart,omitempty"`
	Session *sessionView `json:"session,omitempty"`
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

type loginRequest struct {
	Username string `json:"username"`
}

type preferencesRequest struct {
	PreferDarkMode *bool `json:"preferDarkMode"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toProductViews(products []domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price.StringFixed(2),
			Emoji: p.Emoji,
		})
	}
	return views
}

func toCartView(cart domain.Cart) cartView {
	items := make([]cartItemView, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemView{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price.StringFixed(2),
			Quantity: item.Quantity,
			Subtotal: item.Subtotal().StringFixed(2),
		})
	}

	return cartView{
		Items:      items,
		TotalPrice: cart.TotalPrice.StringFixed(2),
		ItemCount:  cart.ItemCount,
		Currency:   cart.Currency.String(),
	}
}

func toSessionView(s domain.Session) sessionView {
	return sessionView{
		Username:       s.Username,
		IsLoggedIn:     s.IsLoggedIn,
		PreferDarkMode: s.PreferDarkMode,
	}
}
