package visibility

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"camstore-backend/schedule"

	"github.com/robfig/cron/v3"
)

// MaxInterval keeps polling at or below schedule granularity (one minute).
const MaxInterval = time.Minute

// FetchFunc loads the raw, unfiltered rows for one entity kind.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Poller keeps the list of currently visible entities fresh by re-fetching
// and re-filtering on a fixed cadence and whenever Refresh is called.
type Poller[T schedule.Windowed] struct {
	name     string
	fetch    FetchFunc[T]
	clock    schedule.Clock
	interval time.Duration

	mu       sync.RWMutex
	items    []T
	applied  uint64
	lastErr  error
	inflight int

	seq  atomic.Uint64
	cron *cron.Cron
}

// NewPoller builds a poller. Intervals above MaxInterval are clamped.
func NewPoller[T schedule.Windowed](name string, fetch FetchFunc[T], clock schedule.Clock, interval time.Duration) *Poller[T] {
	if interval <= 0 || interval > MaxInterval {
		interval = MaxInterval
	}
	return &Poller[T]{
		name:     name,
		fetch:    fetch,
		clock:    clock,
		interval: interval,
		items:    []T{},
	}
}

// Interval is the effective polling cadence.
func (p *Poller[T]) Interval() time.Duration {
	return p.interval
}

// Start performs the initial load and then schedules periodic refreshes.
// ctx bounds only the initial load; ticks run until Stop. A failed initial
// load is logged, not fatal: the next tick retries. Calling Start again
// replaces the running schedule.
func (p *Poller[T]) Start(ctx context.Context) {
	p.Stop()
	if err := p.Refresh(ctx); err != nil {
		log.Printf("[visibility:%s] initial load failed: %v", p.name, err)
	}

	c := cron.New()
	c.Schedule(cron.Every(p.interval), cron.FuncJob(func() {
		tickCtx, cancel := context.WithTimeout(context.Background(), p.interval)
		defer cancel()
		_ = p.Refresh(tickCtx)
	}))
	c.Start()

	p.mu.Lock()
	p.cron = c
	p.mu.Unlock()
	log.Printf("[visibility:%s] polling every %s", p.name, p.interval)
}

// Stop halts the periodic refresh and waits for a running tick to finish.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// Refresh fetches and filters once. Overlapping refreshes are allowed; a
// result is applied only if no later-started refresh has already been
// applied. On error the previous list is kept.
func (p *Poller[T]) Refresh(ctx context.Context) error {
	seq := p.seq.Add(1)

	p.mu.Lock()
	p.inflight++
	p.mu.Unlock()

	rows, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inflight--

	if err != nil {
		err = fmt.Errorf("fetch %s: %w", p.name, err)
		log.Printf("[visibility:%s] refresh #%d failed, keeping %d items: %v", p.name, seq, len(p.items), err)
		if seq > p.applied {
			p.lastErr = err
		}
		return err
	}

	if seq < p.applied {
		log.Printf("[visibility:%s] discarding stale refresh #%d (have #%d)", p.name, seq, p.applied)
		return nil
	}

	p.items = schedule.Filter(rows, p.clock.Now())
	p.applied = seq
	p.lastErr = nil
	return nil
}

// Visible returns a copy of the currently visible entities.
func (p *Poller[T]) Visible() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// Loading reports whether any refresh is in flight.
func (p *Poller[T]) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inflight > 0
}

// LastError is the error of the most recent failed refresh, cleared by the
// next successful one.
func (p *Poller[T]) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}
