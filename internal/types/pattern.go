// Package types provides common type definitions shared across the blockpress
// packages. This package contains shared types to avoid circular dependencies
// between the scanner, registry, and caching layers.
package types

import "time"

// PatternFile contains the metadata extracted from a single block-pattern
// file's header comment. List-valued fields are stored in header order,
// without deduplication, and are left nil when the header omits them or
// supplies only empty tokens.
type PatternFile struct {
	// Slug is the pattern identifier, e.g. "twentytwentyfour/banner-hero".
	Slug string `json:"slug"`
	// Title is the human-readable pattern name. Required.
	Title string `json:"title"`
	// Description explains what the pattern renders. Optional.
	Description string `json:"description,omitempty"`
	// ViewportWidth is the preferred preview width in pixels. Zero means
	// the header did not declare one.
	ViewportWidth int `json:"viewportWidth,omitempty"`
	// Inserter is set (to true) only when the header declares the pattern
	// visible in the inserter via "yes" or "true". A header value of "no",
	// an empty value, or an absent field all leave it nil.
	Inserter *bool `json:"inserter,omitempty"`
	// Categories lists pattern category slugs.
	Categories []string `json:"categories,omitempty"`
	// Keywords lists search keywords.
	Keywords []string `json:"keywords,omitempty"`
	// BlockTypes lists block types the pattern attaches to.
	BlockTypes []string `json:"blockTypes,omitempty"`
	// PostTypes restricts the pattern to specific post types.
	PostTypes []string `json:"postTypes,omitempty"`
	// TemplateTypes lists template types the pattern is suggested for.
	TemplateTypes []string `json:"templateTypes,omitempty"`
}

// PatternCacheEntry is the unit the scanner persists per theme: the theme
// version the scan was taken against and every valid pattern keyed by file
// path relative to the theme's patterns directory. Entries are replaced
// wholesale, never patched.
type PatternCacheEntry struct {
	Version  string                 `json:"version"`
	Patterns map[string]PatternFile `json:"patterns"`
}

// EventType represents the type of pattern registry change event.
type EventType string

const (
	EventTypeAdded   EventType = "added"
	EventTypeUpdated EventType = "updated"
	EventTypeRemoved EventType = "removed"
)

// PatternEvent represents a change in the pattern registry, used for
// notifications to watchers like the development server.
type PatternEvent struct {
	// Type indicates the kind of change (added, updated, removed).
	Type EventType
	// Path is the pattern's registry key (path relative to the patterns
	// directory).
	Path string
	// Pattern contains the pattern metadata (nil for removed events).
	Pattern *PatternFile
	// Timestamp records when the event occurred.
	Timestamp time.Time
}
