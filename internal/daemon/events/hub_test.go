package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazzzi/maenggu-run/internal/geometry"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe(4)
	defer cancelA()
	b, cancelB := h.Subscribe(4)
	defer cancelB()

	h.SnackUpdated(9)

	for _, ch := range []<-chan Event{a, b} {
		e := <-ch
		assert.Equal(t, SnackUpdate, e.Type)
		assert.Equal(t, uint32(9), e.Snacks)
	}
}

func TestEventsArriveInOrder(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(8)
	defer cancel()

	h.SnackUpdated(1)
	h.Summon()
	h.SnackUpdated(2)

	assert.Equal(t, Event{Type: SnackUpdate, Snacks: 1}, <-ch)
	assert.Equal(t, Event{Type: Summon}, <-ch)
	assert.Equal(t, Event{Type: SnackUpdate, Snacks: 2}, <-ch)
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(1)
	defer cancel()

	for i := uint32(0); i < 10; i++ {
		h.SnackUpdated(i)
	}

	e := <-ch
	assert.Equal(t, uint32(0), e.Snacks, "only the first event fits the buffer")
	assert.Empty(t, ch)
}

func TestCancelClosesChannel(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(0)
	require.Equal(t, 1, h.Subscribers())

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, h.Subscribers())

	h.Summon() // must not panic on the removed subscriber
}

func TestListenersAreNotCountedAsSubscribers(t *testing.T) {
	h := NewHub()
	l, cancelL := h.Listen(2)
	defer cancelL()
	assert.Zero(t, h.Subscribers())

	_, cancelS := h.Subscribe(2)
	defer cancelS()
	assert.Equal(t, 1, h.Subscribers())

	h.SnackUpdated(0)
	assert.Equal(t, Event{Type: SnackUpdate, Snacks: 0}, <-l)

	cancelL()
	_, open := <-l
	assert.False(t, open)
	assert.Equal(t, 1, h.Subscribers())
}

func TestBoundsChanged(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(2)
	defer cancel()

	r := geometry.Rect{X: -1280, Width: 3200, Height: 1080}
	h.BoundsChanged(r, true)
	h.BoundsChanged(geometry.Rect{}, false)

	e := <-ch
	require.NotNil(t, e.Bounds)
	assert.Equal(t, r, *e.Bounds)

	e = <-ch
	assert.Equal(t, BoundsUpdate, e.Type)
	assert.Nil(t, e.Bounds)
}

func TestClose(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(1)

	h.Close()
	_, open := <-ch
	assert.False(t, open)
	cancel()

	late, _ := h.Subscribe(1)
	_, open = <-late
	assert.False(t, open)
}
