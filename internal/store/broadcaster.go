package store

import (
	"sync"

	"github.com/google/uuid"
)

const defaultSubscriberBuffer = 1

// Broadcaster fans values out to subscribers without ever blocking the publisher.
// A subscriber that falls behind loses its oldest pending values.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	subs   map[uuid.UUID]chan T
	buffer int
	closed bool
}

func NewBroadcaster[T any](buffer int) *Broadcaster[T] {
	if buffer < 1 {
		buffer = defaultSubscriberBuffer
	}

	return &Broadcaster[T]{
		subs:   make(map[uuid.UUID]chan T),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned cancel func unregisters it
// and closes the channel; calling it more than once is safe.
func (b *Broadcaster[T]) Subscribe() (<-chan T, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan T, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := uuid.New()
	b.subs[id] = ch

	return ch, func() { b.unsubscribe(id) }
}

func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- v:
			continue
		default:
		}

		// full: drop the oldest pending value, then retry once
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

// Len returns the number of active subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.subs)
}

// Close closes every subscriber channel. Later subscriptions get a closed channel.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

func (b *Broadcaster[T]) unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subs[id]
	if !ok {
		return
	}
	delete(b.subs, id)
	close(ch)
}
