package clickaction

// IntentKind is one of navigate, external or signal.
type IntentKind string

const (
	IntentNavigate IntentKind = "navigate"
	IntentExternal IntentKind = "external"
	IntentSignal   IntentKind = "signal"
)

// Intent is a side effect captured by a Recorder.
type Intent struct {
	Kind   IntentKind `json:"kind"`
	Target string     `json:"target,omitempty"`
	Signal *Signal    `json:"signal,omitempty"`
}

// Recorder is a Navigator that records what would happen instead of doing
// it. The API hands the recorded intents to thin clients.
type Recorder struct {
	Intents []Intent
}

func (r *Recorder) Navigate(route string) {
	r.Intents = append(r.Intents, Intent{Kind: IntentNavigate, Target: route})
}

func (r *Recorder) OpenExternal(target string) {
	r.Intents = append(r.Intents, Intent{Kind: IntentExternal, Target: target})
}

func (r *Recorder) record(s Signal) {
	r.Intents = append(r.Intents, Intent{Kind: IntentSignal, Signal: &s})
}

// Resolve dispatches a against a fresh Recorder and returns the intents in
// the order they were produced. The result is never nil.
func Resolve(a Action, whatsAppNumber, defaultMessage string) []Intent {
	rec := &Recorder{Intents: []Intent{}}
	bus := NewBus()
	bus.Subscribe(rec.record)

	d := &Dispatcher{
		Nav:            rec,
		Bus:            bus,
		WhatsAppNumber: whatsAppNumber,
		DefaultMessage: defaultMessage,
	}
	d.Dispatch(a)
	return rec.Intents
}
