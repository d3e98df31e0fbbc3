package changefeed

import (
	"context"
	"sync"
)

// Hub is an in-process Feed and Publisher. Handlers run synchronously on the
// publishing goroutine, so they must not block.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]Handler)}
}

func (h *Hub) Subscribe(table string, fn Handler) (Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	if h.subs[table] == nil {
		h.subs[table] = make(map[int]Handler)
	}
	h.subs[table][id] = fn
	return &hubSubscription{hub: h, table: table, id: id}, nil
}

// Publish delivers e to every handler subscribed to e.Table.
func (h *Hub) Publish(_ context.Context, e Event) error {
	h.dispatch(e)
	return nil
}

func (h *Hub) dispatch(e Event) {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.subs[e.Table]))
	for _, fn := range h.subs[e.Table] {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(e)
	}
}

// Subscribers returns the number of live subscriptions for table.
func (h *Hub) Subscribers(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[table])
}

type hubSubscription struct {
	hub   *Hub
	table string
	id    int
	once  sync.Once
}

func (s *hubSubscription) Unsubscribe() error {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		delete(s.hub.subs[s.table], s.id)
		if len(s.hub.subs[s.table]) == 0 {
			delete(s.hub.subs, s.table)
		}
	})
	return nil
}
