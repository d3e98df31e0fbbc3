// Package popup remembers which popup offers a visitor session has already
// been shown.
package popup

import (
	"context"
	"sync"
	"time"
)

// Store is the per-session "already shown" set.
type Store interface {
	Seen(ctx context.Context, session, offerID string) (bool, error)
	MarkSeen(ctx context.Context, session, offerID string) error
}

// MemoryStore keeps sessions in process. Sessions idle for longer than ttl
// are forgotten on the next write.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*memorySession
}

type memorySession struct {
	shown    map[string]struct{}
	lastSeen time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*memorySession),
	}
}

func (m *MemoryStore) Seen(_ context.Context, session, offerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[session]
	if !ok || m.expired(s) {
		return false, nil
	}
	_, shown := s.shown[offerID]
	return shown, nil
}

func (m *MemoryStore) MarkSeen(_ context.Context, session, offerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evict()
	s, ok := m.sessions[session]
	if !ok {
		s = &memorySession{shown: make(map[string]struct{})}
		m.sessions[session] = s
	}
	s.shown[offerID] = struct{}{}
	s.lastSeen = m.now()
	return nil
}

// Len is the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemoryStore) expired(s *memorySession) bool {
	return m.ttl > 0 && m.now().Sub(s.lastSeen) > m.ttl
}

func (m *MemoryStore) evict() {
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
		}
	}
}
