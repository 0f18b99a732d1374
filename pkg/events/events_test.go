package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()

	first := 0
	second := 0
	bus.Subscribe("cartUpdated", func() { first++ })
	bus.Subscribe("cartUpdated", func() { second++ })

	bus.Publish("cartUpdated")
	bus.Publish("cartUpdated")

	assert.Equal(t, 2, first)
	assert.Equal(t, 2, second)
}

func TestBus_PublishIsSynchronous(t *testing.T) {
	bus := NewBus()

	delivered := false
	bus.Subscribe("orderUpdated", func() { delivered = true })

	bus.Publish("orderUpdated")

	assert.True(t, delivered, "handler must run before Publish returns")
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsub := bus.Subscribe("userUpdated", func() { calls++ })

	bus.Publish("userUpdated")
	unsub()
	bus.Publish("userUpdated")
	unsub() // second call is a no-op

	assert.Equal(t, 1, calls)
}

func TestBus_NoRetroactiveDelivery(t *testing.T) {
	bus := NewBus()

	bus.Publish("addressesUpdated")

	calls := 0
	bus.Subscribe("addressesUpdated", func() { calls++ })

	assert.Equal(t, 0, calls)
}

func TestBus_EventsAreIsolated(t *testing.T) {
	bus := NewBus()

	cart := 0
	orders := 0
	bus.Subscribe("cartUpdated", func() { cart++ })
	bus.Subscribe("orderUpdated", func() { orders++ })

	bus.Publish("cartUpdated")

	assert.Equal(t, 1, cart)
	assert.Equal(t, 0, orders)
}
