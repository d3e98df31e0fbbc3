package changefeed

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// RefreshTimeout bounds a refresh triggered by an event.
const RefreshTimeout = 15 * time.Second

// Refresher is anything that can re-fetch on demand, typically a poller.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Bridge turns feed events into immediate refreshes so admin edits reach the
// storefront before the next poll tick.
type Bridge struct {
	mu     sync.Mutex
	subs   []Subscription
	wg     sync.WaitGroup
	closed bool
}

func NewBridge() *Bridge {
	return &Bridge{}
}

// Bind subscribes r to table on feed. A subscription failure is logged and
// returned; the caller's poller keeps working on its timer.
func (b *Bridge) Bind(feed Feed, table string, r Refresher) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errors.New("bridge closed")
	}

	sub, err := feed.Subscribe(table, func(e Event) {
		if !e.Valid() {
			log.Printf("[changefeed] ignoring malformed event on %s: %+v", table, e)
			return
		}
		b.trigger(table, r)
	})
	if err != nil {
		log.Printf("[changefeed] subscribe %s failed, relying on polling: %v", table, err)
		return err
	}
	b.subs = append(b.subs, sub)
	return nil
}

func (b *Bridge) trigger(table string, r Refresher) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), RefreshTimeout)
		defer cancel()
		if err := r.Refresh(ctx); err != nil {
			log.Printf("[changefeed] refresh after %s change failed: %v", table, err)
		}
	}()
}

// Close unsubscribes everything and waits for in-flight refreshes.
func (b *Bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	var errs []error
	for _, s := range subs {
		if err := s.Unsubscribe(); err != nil {
			errs = append(errs, err)
		}
	}
	b.wg.Wait()
	return errors.Join(errs...)
}
