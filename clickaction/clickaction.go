package clickaction

import (
	"log"
	"net/url"
	"strings"
)

// Type is what a banner does when tapped.
type Type string

const (
	None     Type = "none"
	Product  Type = "product"
	Category Type = "category"
	Offers   Type = "offers"
	Services Type = "services"
	WhatsApp Type = "whatsapp"
	External Type = "external"
)

// Storefront routes targeted by navigation actions.
const (
	RouteCatalog  = "/products"
	RouteOffers   = "/#offers"
	RouteServices = "/services"
)

const DefaultWhatsAppMessage = "Hi! I'm interested in your CCTV offers."

// Action is the click descriptor stored on a banner.
type Action struct {
	Type  Type   `json:"type"`
	Value string `json:"value,omitempty"`
}

// Known reports whether t is one of the supported action types.
func Known(t Type) bool {
	switch t {
	case None, Product, Category, Offers, Services, WhatsApp, External:
		return true
	}
	return false
}

// Navigator performs the UI side effects of an action.
type Navigator interface {
	Navigate(route string)
	OpenExternal(target string)
}

// Dispatcher maps actions onto navigation calls and catalog signals.
type Dispatcher struct {
	Nav            Navigator
	Bus            *Bus
	WhatsAppNumber string
	DefaultMessage string
}

// Dispatch performs the side effects for a. Unknown types do nothing.
func (d *Dispatcher) Dispatch(a Action) {
	switch a.Type {
	case None, "":
		return
	case Product:
		d.navigate(RouteCatalog)
		d.publish(Signal{Kind: OpenProduct, Value: a.Value})
	case Category:
		d.navigate(RouteCatalog)
		d.publish(Signal{Kind: SelectCategory, Value: a.Value})
	case Offers:
		d.navigate(RouteOffers)
	case Services:
		d.navigate(RouteServices)
	case WhatsApp:
		d.openExternal(d.WhatsAppLink(a.Value))
	case External:
		if strings.TrimSpace(a.Value) == "" {
			return
		}
		d.openExternal(a.Value)
	default:
		log.Printf("[clickaction] ignoring unknown action type %q", a.Type)
	}
}

func (d *Dispatcher) navigate(route string) {
	if d.Nav != nil {
		d.Nav.Navigate(route)
	}
}

func (d *Dispatcher) openExternal(target string) {
	if d.Nav != nil {
		d.Nav.OpenExternal(target)
	}
}

func (d *Dispatcher) publish(s Signal) {
	if d.Bus != nil {
		d.Bus.Publish(s)
	}
}

// WhatsAppLink builds a wa.me chat link prefilled with message, or with the
// default message when message is blank.
func (d *Dispatcher) WhatsAppLink(message string) string {
	if strings.TrimSpace(message) == "" {
		message = d.DefaultMessage
	}
	if message == "" {
		message = DefaultWhatsAppMessage
	}
	number := strings.TrimLeft(digitsOnly(d.WhatsAppNumber), "0")
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
