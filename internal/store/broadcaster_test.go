package store_test

import (
	"testing"

	"github.com/nikolayk812/storefront-state/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_PublishToAllSubscribers(t *testing.T) {
	b := store.NewBroadcaster[int](2)

	first, cancelFirst := b.Subscribe()
	defer cancelFirst()
	second, cancelSecond := b.Subscribe()
	defer cancelSecond()

	require.Equal(t, 2, b.Len())

	b.Publish(1)
	b.Publish(2)

	assert.Equal(t, 1, <-first)
	assert.Equal(t, 2, <-first)
	assert.Equal(t, 1, <-second)
	assert.Equal(t, 2, <-second)
}

func TestBroadcaster_DropsOldestWhenFull(t *testing.T) {
	b := store.NewBroadcaster[int](2)
	ch, cancel := b.Subscribe()
	defer cancel()

	for i := 1; i <= 5; i++ {
		b.Publish(i)
	}

	assert.Equal(t, 4, <-ch)
	assert.Equal(t, 5, <-ch)
}

func TestBroadcaster_CancelIsIdempotent(t *testing.T) {
	b := store.NewBroadcaster[string](0)
	ch, cancel := b.Subscribe()

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Zero(t, b.Len())

	// publishing without subscribers is a no-op
	b.Publish("ignored")
}

func TestBroadcaster_SubscribeAfterClose(t *testing.T) {
	b := store.NewBroadcaster[int](1)
	b.Close()
	b.Close()

	ch, cancel := b.Subscribe()
	defer cancel()

	_, ok := <-ch
	assert.False(t, ok)
}
