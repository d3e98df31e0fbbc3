package changefeed

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
)

// NotifyChannel is the LISTEN/NOTIFY channel the change triggers write to.
const NotifyChannel = "promo_changes"

// PostgresFeed receives row changes through LISTEN/NOTIFY. Triggers installed
// by the database package publish JSON payloads of the form
// {"table":"banners","op":"UPDATE","id":"..."}.
type PostgresFeed struct {
	listener *pq.Listener
	hub      *Hub
	done     chan struct{}
	once     sync.Once
}

// NewPostgresFeed connects a dedicated listener connection and starts
// forwarding notifications.
func NewPostgresFeed(dsn string) (*PostgresFeed, error) {
	report := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("[changefeed:postgres] listener event %d: %v", ev, err)
		}
	}

	l := pq.NewListener(dsn, 2*time.Second, time.Minute, report)
	if err := l.Listen(NotifyChannel); err != nil {
		l.Close()
		return nil, fmt.Errorf("listen %s: %w", NotifyChannel, err)
	}

	f := &PostgresFeed{
		listener: l,
		hub:      NewHub(),
		done:     make(chan struct{}),
	}
	go f.run()
	log.Printf("[changefeed:postgres] listening on %s", NotifyChannel)
	return f, nil
}

func (f *PostgresFeed) run() {
	keepalive := time.NewTicker(90 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-f.done:
			return
		case n, ok := <-f.listener.Notify:
			if !ok {
				return
			}
			if n == nil {
				// Reconnected: anything may have changed while we were away.
				for _, table := range []string{TableBanners, TableOffers} {
					f.hub.dispatch(Event{Table: table, Op: Update})
				}
				continue
			}
			e, err := decodeNotification(n.Extra)
			if err != nil {
				log.Printf("[changefeed:postgres] bad payload %q: %v", n.Extra, err)
				continue
			}
			f.hub.dispatch(e)
		case <-keepalive.C:
			go func() {
				if err := f.listener.Ping(); err != nil {
					log.Printf("[changefeed:postgres] ping failed: %v", err)
				}
			}()
		}
	}
}

func (f *PostgresFeed) Subscribe(table string, fn Handler) (Subscription, error) {
	return f.hub.Subscribe(table, fn)
}

// Close stops forwarding and releases the listener connection.
func (f *PostgresFeed) Close() error {
	var err error
	f.once.Do(func() {
		close(f.done)
		err = f.listener.Close()
	})
	return err
}

func decodeNotification(payload string) (Event, error) {
	var e Event
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return Event{}, err
	}
	e.Op = Op(strings.ToUpper(string(e.Op)))
	if !e.Valid() {
		return Event{}, fmt.Errorf("incomplete event %+v", e)
	}
	return e, nil
}
