package engine

import (
	"slices"
	"sync"

	"github.com/panelspace/panelspace/internal/geom"
)

// PointerHandler receives pointer events while subscribed.
type PointerHandler interface {
	PointerMove(p geom.Point)
	PointerUp(p geom.Point)
}

// PointerSource hands out scoped subscriptions. The returned function removes
// the subscription and is safe to call more than once.
type PointerSource interface {
	Subscribe(h PointerHandler) (unsubscribe func())
}

// PointerBus is a PointerSource fed by the host's input layer. Events are
// delivered synchronously, in call order, to the handlers subscribed at the
// time of the call.
type PointerBus struct {
	mu       sync.Mutex
	next     int
	handlers map[int]PointerHandler
}

// NewPointerBus creates an empty bus.
func NewPointerBus() *PointerBus {
	return &PointerBus{handlers: make(map[int]PointerHandler)}
}

// Subscribe implements PointerSource.
func (b *PointerBus) Subscribe(h PointerHandler) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.handlers[id] = h
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.handlers, id)
			b.mu.Unlock()
		})
	}
}

// Move delivers a pointer-move.
func (b *PointerBus) Move(p geom.Point) {
	for _, h := range b.snapshot() {
		h.PointerMove(p)
	}
}

// Up delivers a pointer-up.
func (b *PointerBus) Up(p geom.Point) {
	for _, h := range b.snapshot() {
		h.PointerUp(p)
	}
}

// Len returns the number of live subscriptions.
func (b *PointerBus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

// snapshot copies the handlers in subscription order so handlers may
// unsubscribe while an event is delivered.
func (b *PointerBus) snapshot() []PointerHandler {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]PointerHandler, len(ids))
	for i, id := range ids {
		out[i] = b.handlers[id]
	}
	return out
}
