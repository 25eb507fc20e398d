package event

import "github.com/charmbracelet/log"

// Event is one discrete happening. Value and position are optional.
type Event struct {
	Type  Type
	Value int
	X, Y  float64
}

// Sink receives events as they happen. Emit must not block the tick.
type Sink interface {
	Emit(e Event)
}

// Discard drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(Event) {}

// Recorder keeps every event it receives, in order.
type Recorder struct {
	Events []Event
}

// Emit appends the event.
func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many events of type t were recorded.
func (r *Recorder) Count(t Type) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Has reports whether an event of type t was recorded.
func (r *Recorder) Has(t Type) bool {
	return r.Count(t) > 0
}

// Reset forgets all recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Multi fans every event out to several sinks.
type Multi []Sink

// Emit forwards the event to each sink.
func (m Multi) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}

// LogSink writes events to a structured logger at debug level.
type LogSink struct {
	Logger *log.Logger
}

// Emit logs the event with its value and position.
func (s LogSink) Emit(e Event) {
	if s.Logger == nil {
		return
	}
	s.Logger.Debug("event", "type", e.Type, "value", e.Value, "x", int(e.X), "y", int(e.Y))
}

// OrDiscard returns s, or Discard when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}
