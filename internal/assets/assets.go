// Package assets provides the style handle registry global styles attach to.
// It stands in for the host rendering pipeline's enqueueing layer: handles
// are registered by name and accumulate inline CSS in append order.
package assets

import (
	"sort"
	"strings"
	"sync"
)

// GlobalStylesHandle is the shared handle block styles attach to when the
// deployment loads one combined stylesheet.
const GlobalStylesHandle = "global-styles"

// StyleRegistry tracks style handles and their inline CSS.
type StyleRegistry struct {
	mutex   sync.RWMutex
	inline  map[string][]string
	ordered []string
}

// NewStyleRegistry creates an empty style registry.
func NewStyleRegistry() *StyleRegistry {
	return &StyleRegistry{
		inline: make(map[string][]string),
	}
}

// AddInline appends CSS to a handle, registering the handle on first use.
// Empty CSS is ignored.
func (r *StyleRegistry) AddInline(handle, css string) {
	if css == "" {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.inline[handle]; !exists {
		r.ordered = append(r.ordered, handle)
	}
	r.inline[handle] = append(r.inline[handle], css)
}

// Inline returns the concatenated CSS attached to a handle.
func (r *StyleRegistry) Inline(handle string) string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return strings.Join(r.inline[handle], "\n")
}

// Handles returns all registered handles in registration order.
func (r *StyleRegistry) Handles() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	out := make([]string, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// HandlesSorted returns all registered handles sorted by name, for stable
// listing output.
func (r *StyleRegistry) HandlesSorted() []string {
	handles := r.Handles()
	sort.Strings(handles)
	return handles
}

// Reset drops all handles and CSS.
func (r *StyleRegistry) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.inline = make(map[string][]string)
	r.ordered = nil
}
