// Package hooks provides typed event dispatch for state changes that must
// invalidate derived caches: theme switches, global style edits, and pattern
// cache invalidations. Subscribers receive events on buffered channels;
// dispatch never blocks the publisher.
package hooks

import (
	"sync"
	"time"
)

// EventKind identifies what changed.
type EventKind string

const (
	// ThemeSwitched fires when the active theme changes.
	ThemeSwitched EventKind = "theme_switched"
	// GlobalStylesUpdated fires when user style customizations change.
	GlobalStylesUpdated EventKind = "global_styles_updated"
	// PatternsInvalidated fires when pattern files change on disk.
	PatternsInvalidated EventKind = "patterns_invalidated"
)

// Event is a typed change notification.
type Event struct {
	Kind EventKind
	// Subject names what changed, e.g. the theme stylesheet or a file
	// path. May be empty.
	Subject   string
	Timestamp time.Time
}

// Bus dispatches events to subscribers. The zero value is not usable; use
// NewBus.
type Bus struct {
	mutex       sync.RWMutex
	subscribers map[EventKind][]chan Event
	closed      bool
}

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[EventKind][]chan Event),
	}
}

// Subscribe returns a channel receiving events of the given kinds.
func (b *Bus) Subscribe(kinds ...EventKind) <-chan Event {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	ch := make(chan Event, 16)
	for _, kind := range kinds {
		b.subscribers[kind] = append(b.subscribers[kind], ch)
	}
	return ch
}

// Publish delivers an event to all subscribers of its kind. Slow
// subscribers with full channels miss the event rather than stalling the
// publisher; every event is a "recompute from current state" signal, so a
// later event supersedes a missed one.
func (b *Bus) Publish(kind EventKind, subject string) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	if b.closed {
		return
	}
	event := Event{Kind: kind, Subject: subject, Timestamp: time.Now()}
	for _, ch := range b.subscribers[kind] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close closes all subscriber channels.
func (b *Bus) Close() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	seen := make(map[chan Event]bool)
	for _, chans := range b.subscribers {
		for _, ch := range chans {
			if !seen[ch] {
				seen[ch] = true
				close(ch)
			}
		}
	}
	b.subscribers = make(map[EventKind][]chan Event)
}
