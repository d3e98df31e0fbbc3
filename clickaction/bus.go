package clickaction

import "sync"

// SignalKind identifies a catalog instruction.
type SignalKind string

const (
	OpenProduct    SignalKind = "open_product"
	SelectCategory SignalKind = "select_category"
)

// Signal tells the catalog view what to show after navigation.
type Signal struct {
	Kind  SignalKind `json:"kind"`
	Value string     `json:"value"`
}

// Bus is an explicit in-process channel between the dispatcher and the
// catalog view. Listeners run synchronously in subscription order.
type Bus struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]func(Signal)
	order     []int
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[int]func(Signal))}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Signal)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.listeners[id] = fn
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

func (b *Bus) Publish(s Signal) {
	b.mu.RLock()
	fns := make([]func(Signal), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.listeners[id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(s)
	}
}
