package store

import (
	"log/slog"
	"sync"

	"github.com/nikolayk812/storefront-state/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// CartStore owns the line items of a shopping cart.
// At most one line item exists per product id; items keep insertion order.
type CartStore struct {
	mu    sync.RWMutex
	items []domain.CartItem
	index map[string]int

	currency currency.Unit
	changes  *Broadcaster[domain.Cart]
	metrics  *Metrics
	log      *slog.Logger
}

func NewCartStore(opts ...Option) *CartStore {
	cfg := newConfig(opts)

	return &CartStore{
		index:    make(map[string]int),
		currency: cfg.currency,
		changes:  NewBroadcaster[domain.Cart](cfg.buffer),
		metrics:  cfg.metrics,
		log:      cfg.log.With(slog.String("store", "cart")),
	}
}

// AddItem increments the quantity of the line item with the same id, keeping the
// stored name and price. Unknown ids are appended; a quantity below 1 is stored as 1.
func (s *CartStore) AddItem(item domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[item.ID]; ok {
		s.items[i].Quantity++
		s.log.Debug("cart item incremented", slog.String("id", item.ID), slog.Int("quantity", s.items[i].Quantity))
	} else {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		s.index[item.ID] = len(s.items)
		s.items = append(s.items, item)
		s.log.Debug("cart item added", slog.String("id", item.ID), slog.Int("quantity", item.Quantity))
	}

	s.changed(opAdd)
}

// RemoveItem drops the line item whose id equals item.ID. Absent ids are a no-op.
func (s *CartStore) RemoveItem(item domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[item.ID]
	if !ok {
		return
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	s.reindex()
	s.log.Debug("cart item removed", slog.String("id", item.ID))

	s.changed(opRemove)
}

func (s *CartStore) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	clear(s.index)
	s.log.Debug("cart cleared")

	s.changed(opClear)
}

// Items returns a copy of the line items in insertion order.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyItems()
}

func (s *CartStore) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.totalPrice()
}

func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.itemCount()
}

// Total returns TotalPrice in the store currency.
func (s *CartStore) Total() domain.Money {
	return domain.Money{Amount: s.TotalPrice(), Currency: s.currency}
}

// Snapshot reads items and derived values under a single lock.
func (s *CartStore) Snapshot() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot()
}

// Subscribe delivers a snapshot after every mutation until cancel is called.
func (s *CartStore) Subscribe() (<-chan domain.Cart, func()) {
	return s.changes.Subscribe()
}

// Close ends every subscription.
func (s *CartStore) Close() {
	s.changes.Close()
}

func (s *CartStore) changed(op string) {
	snap := s.snapshot()

	if s.metrics != nil {
		s.metrics.cartChanged(op, snap)
	}

	s.changes.Publish(snap)
}

func (s *CartStore) snapshot() domain.Cart {
	return domain.Cart{
		Items:      s.copyItems(),
		TotalPrice: s.totalPrice(),
		ItemCount:  s.itemCount(),
		Currency:   s.currency,
	}
}

func (s *CartStore) copyItems() []domain.CartItem {
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *CartStore) totalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *CartStore) itemCount() int {
	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *CartStore) reindex() {
	clear(s.index)
	for i, item := range s.items {
		s.index[item.ID] = i
	}
}
