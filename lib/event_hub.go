package lib

import "sync"

// Subscriber receives progress events for one request id ("" = all)
type Subscriber struct {
	ch chan ProgressEvent
}

// Events returns the subscriber's event channel
func (s *Subscriber) Events() <-chan ProgressEvent {
	return s.ch
}

// EventHub is an in-memory pub/sub for ingestion progress, keyed by
// request id. Publishing never blocks; events to slow subscribers are
// dropped.
type EventHub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscriber]struct{}
}

// NewEventHub creates a new event hub
func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[string]map[*Subscriber]struct{})}
}

// Subscribe registers a subscriber for a request id; the empty id
// subscribes to every request
func (h *EventHub) Subscribe(requestID string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := &Subscriber{ch: make(chan ProgressEvent, 256)}
	if _, ok := h.subs[requestID]; !ok {
		h.subs[requestID] = make(map[*Subscriber]struct{})
	}
	h.subs[requestID][s] = struct{}{}
	return s
}

// Unsubscribe removes a subscriber and closes its channel
func (h *EventHub) Unsubscribe(requestID string, s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.subs[requestID]; ok {
		if _, present := subs[s]; !present {
			return
		}
		delete(subs, s)
		close(s.ch)
		if len(subs) == 0 {
			delete(h.subs, requestID)
		}
	}
}

// Publish delivers an event to the request's subscribers and to global
// subscribers
func (h *EventHub) Publish(ev ProgressEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	targets := []map[*Subscriber]struct{}{h.subs[""]}
	if ev.RequestID != "" {
		targets = append(targets, h.subs[ev.RequestID])
	}
	for _, subs := range targets {
		for s := range subs {
			select {
			case s.ch <- ev:
			default: // drop if slow
			}
		}
	}
}
