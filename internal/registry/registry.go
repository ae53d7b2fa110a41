// Package registry maintains the process-wide table of discovered block
// patterns. It is an explicit object with defined construction and teardown
// rather than ambient global state; the serve command owns one instance and
// feeds it from scanner results.
package registry

import (
	"sync"
	"time"

	"github.com/spacedmonkey/blockpress/internal/types"
)

// PatternRegistry manages all discovered patterns, keyed the same way the
// cache entry is: by file path relative to the patterns directory.
type PatternRegistry struct {
	patterns map[string]types.PatternFile
	mutex    sync.RWMutex
	watchers []chan types.PatternEvent
}

// NewPatternRegistry creates a new pattern registry.
func NewPatternRegistry() *PatternRegistry {
	return &PatternRegistry{
		patterns: make(map[string]types.PatternFile),
		watchers: make([]chan types.PatternEvent, 0),
	}
}

// Register adds or updates a pattern in the registry.
func (r *PatternRegistry) Register(path string, pattern types.PatternFile) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	eventType := types.EventTypeAdded
	if _, exists := r.patterns[path]; exists {
		eventType = types.EventTypeUpdated
	}
	r.patterns[path] = pattern

	r.notify(types.PatternEvent{
		Type:      eventType,
		Path:      path,
		Pattern:   &pattern,
		Timestamp: time.Now(),
	})
}

// Remove removes a pattern from the registry.
func (r *PatternRegistry) Remove(path string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.patterns[path]; !exists {
		return
	}
	delete(r.patterns, path)

	r.notify(types.PatternEvent{
		Type:      types.EventTypeRemoved,
		Path:      path,
		Timestamp: time.Now(),
	})
}

// Replace swaps the registry contents for a fresh scan result, emitting
// added/updated/removed events for the difference.
func (r *PatternRegistry) Replace(patterns map[string]types.PatternFile) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := time.Now()
	for path := range r.patterns {
		if _, keep := patterns[path]; !keep {
			delete(r.patterns, path)
			r.notify(types.PatternEvent{Type: types.EventTypeRemoved, Path: path, Timestamp: now})
		}
	}
	for path, pattern := range patterns {
		eventType := types.EventTypeAdded
		if _, exists := r.patterns[path]; exists {
			eventType = types.EventTypeUpdated
		}
		r.patterns[path] = pattern
		p := pattern
		r.notify(types.PatternEvent{Type: eventType, Path: path, Pattern: &p, Timestamp: now})
	}
}

// Get retrieves a pattern by its registry key.
func (r *PatternRegistry) Get(path string) (types.PatternFile, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	pattern, exists := r.patterns[path]
	return pattern, exists
}

// GetAll returns a copy of all registered patterns.
func (r *PatternRegistry) GetAll() map[string]types.PatternFile {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make(map[string]types.PatternFile, len(r.patterns))
	for path, pattern := range r.patterns {
		result[path] = pattern
	}
	return result
}

// Count returns the number of registered patterns.
func (r *PatternRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.patterns)
}

// Watch returns a channel that receives pattern events.
func (r *PatternRegistry) Watch() <-chan types.PatternEvent {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ch := make(chan types.PatternEvent, 100)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it.
func (r *PatternRegistry) UnWatch(ch <-chan types.PatternEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}

// Close tears the registry down, closing all watcher channels.
func (r *PatternRegistry) Close() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, watcher := range r.watchers {
		close(watcher)
	}
	r.watchers = nil
	r.patterns = make(map[string]types.PatternFile)
}

// notify delivers an event to all watchers without blocking; callers hold
// the registry mutex.
func (r *PatternRegistry) notify(event types.PatternEvent) {
	for _, watcher := range r.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}
