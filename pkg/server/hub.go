package server

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Events pushed to a page's websocket clients besides toast.EventName.
const (
	// ClipboardEvent asks clients to write text to the clipboard.
	ClipboardEvent = "pagefx:clipboard"

	// DarkModeEvent tells clients the dark mode class changed.
	DarkModeEvent = "pagefx:dark-mode"
)

// Event is one message on the /ws stream.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// subscriber is one websocket connection's outbound queue.
type subscriber struct {
	send chan []byte
}

// Hub fans page events out to the page's websocket connections. Emit never
// blocks: a subscriber whose queue is full misses the event.
type Hub struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	buffer int
	logger zerolog.Logger
}

func newHub(buffer int, logger zerolog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 32
	}
	return &Hub{
		subs:   make(map[*subscriber]struct{}),
		buffer: buffer,
		logger: logger,
	}
}

// Emit implements toast.Emitter.
func (h *Hub) Emit(name string, data any) {
	msg, err := json.Marshal(Event{Type: name, Data: data})
	if err != nil {
		h.logger.Error().Err(err).Str("event", name).Msg("marshal event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.send <- msg:
		default:
			h.logger.Warn().Str("event", name).Msg("subscriber queue full, dropping event")
		}
	}
}

// subscribe registers a new subscriber. The returned func unregisters it
// and closes its queue; it is safe to call more than once.
func (h *Hub) subscribe() (*subscriber, func()) {
	s := &subscriber{send: make(chan []byte, h.buffer)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	return s, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[s]; ok {
			delete(h.subs, s)
			close(s.send)
		}
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// closeAll drops every subscriber, ending their write loops.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		delete(h.subs, s)
		close(s.send)
	}
}
