// Package events routes named game events to audio categories.
//
// Routing is many-to-one: subscribers are counted for observability only,
// what matters for playback is the (category, priority) pair of an event.
package events

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tickrun/internal/audio"
)

// Defaults used for events without a routing entry.
const (
	DefaultCategory = "events"
	DefaultPriority = 5
)

// Route is the audio routing of one event.
type Route struct {
	Category string
	Priority int
}

// Router resolves events to routes and forwards them to an audio sink.
// It is owned by a single engine and is not safe for concurrent use.
type Router struct {
	routes      map[string]Route
	subscribers map[string]int
	sink        audio.Sink
	logger      *log.Logger
}

// NewRouter creates a router that plays through sink.
// A nil sink discards, a nil logger is silent.
func NewRouter(sink audio.Sink, logger *log.Logger) *Router {
	if sink == nil {
		sink = audio.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Router{
		routes:      make(map[string]Route),
		subscribers: make(map[string]int),
		sink:        sink,
		logger:      logger,
	}
}

// SetAudio upserts the routing entry for event. Last write wins.
func (r *Router) SetAudio(event, category string, priority int) {
	r.routes[event] = Route{Category: category, Priority: priority}
}

// Subscribe records interest in event.
func (r *Router) Subscribe(event, name string) {
	r.subscribers[event]++
	r.logger.Debug("subscribed", "event", event, "name", name)
}

// Subscribers returns how many subscriptions event has received.
func (r *Router) Subscribers(event string) int {
	return r.subscribers[event]
}

// Route returns the routing for event, falling back to the defaults.
func (r *Router) Route(event string) Route {
	if rt, ok := r.routes[event]; ok {
		return rt
	}
	return Route{Category: DefaultCategory, Priority: DefaultPriority}
}

// Emit resolves event and plays payload through the sink.
func (r *Router) Emit(event, payload string) {
	rt := r.Route(event)
	r.logger.Debug("emit", "event", event, "category", rt.Category, "priority", rt.Priority)
	r.sink.Play(rt.Category, rt.Priority, payload)
}

// Len returns the number of explicit routing entries.
func (r *Router) Len() int {
	return len(r.routes)
}
