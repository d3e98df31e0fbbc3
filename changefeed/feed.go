package changefeed

import (
	"context"
	"strings"
)

// Op is the kind of row mutation.
type Op string

const (
	Insert Op = "INSERT"
	Update Op = "UPDATE"
	Delete Op = "DELETE"
)

// Tables watched by the storefront.
const (
	TableBanners = "banners"
	TableOffers  = "offers"
)

// Event announces that a row changed. It is an invalidation signal; consumers
// re-fetch instead of trusting the payload.
type Event struct {
	Table string `json:"table"`
	Op    Op     `json:"op"`
	ID    string `json:"id,omitempty"`
}

// Valid reports whether e names a table and a known operation.
func (e Event) Valid() bool {
	if e.Table == "" {
		return false
	}
	switch Op(strings.ToUpper(string(e.Op))) {
	case Insert, Update, Delete:
		return true
	}
	return false
}

// Handler receives events for one table.
type Handler func(Event)

// Subscription is returned by Subscribe and stops delivery when closed.
type Subscription interface {
	Unsubscribe() error
}

// Feed delivers row mutation events.
type Feed interface {
	Subscribe(table string, fn Handler) (Subscription, error)
}

// Publisher announces mutations made by this process.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
