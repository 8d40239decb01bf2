// Package audio provides the sinks that engine notifications and routed
// events are played through. Sinks are side-effect only and never fail.
package audio

import (
	"fmt"
	"io"
	"sync"
)

// Sink receives (category, priority, message) triples.
type Sink interface {
	Play(category string, priority int, message string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(category string, priority int, message string)

// Play calls f.
func (f SinkFunc) Play(category string, priority int, message string) {
	f(category, priority, message)
}

// Discard is a Sink that drops everything.
var Discard Sink = SinkFunc(func(string, int, string) {})

// Format renders a triple in the console line format.
func Format(category string, priority int, message string) string {
	return fmt.Sprintf("[SND][%s][prio=%d] %s", category, priority, message)
}

// ConsoleSink writes one formatted line per notification.
type ConsoleSink struct {
	w io.Writer
}

// NewConsoleSink creates a sink writing to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Play writes the formatted line. Write errors are ignored.
func (s *ConsoleSink) Play(category string, priority int, message string) {
	//nolint:errcheck // Audio is observational, never fails
	fmt.Fprintln(s.w, Format(category, priority, message))
}

// MultiSink fans every notification out to each sink in order.
type MultiSink []Sink

// Play forwards to every non-nil sink.
func (m MultiSink) Play(category string, priority int, message string) {
	for _, s := range m {
		if s != nil {
			s.Play(category, priority, message)
		}
	}
}

// Call is one recorded notification.
type Call struct {
	Category string
	Priority int
	Message  string
}

// String returns the console representation of the call.
func (c Call) String() string {
	return Format(c.Category, c.Priority, c.Message)
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// Play records the call.
func (r *Recorder) Play(category string, priority int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Category: category, Priority: priority, Message: message})
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count returns how many recorded calls have the given category.
func (r *Recorder) Count(category string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Category == category {
			n++
		}
	}
	return n
}
