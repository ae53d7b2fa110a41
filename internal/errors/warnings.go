// Package errors provides diagnostic collection for blockpress. Pattern
// scanning never fails hard on a malformed file; problems are recorded as
// warnings so callers and tests can inspect exactly what was skipped and why.
package errors

import (
	"fmt"
	"sync"
	"time"
)

// WarningCode classifies a scan warning.
type WarningCode string

const (
	// WarningMissingSlug marks a pattern file whose header lacks a Slug.
	WarningMissingSlug WarningCode = "missing_slug"
	// WarningMissingTitle marks a pattern file whose header lacks a Title.
	WarningMissingTitle WarningCode = "missing_title"
	// WarningInvalidSlug marks a slug that fails the allowed character set.
	WarningInvalidSlug WarningCode = "invalid_slug"
)

// ScanWarning describes a problem found while parsing a pattern file.
type ScanWarning struct {
	Code      WarningCode
	File      string
	Message   string
	Timestamp time.Time
}

// Error implements the error interface.
func (w *ScanWarning) Error() string {
	return fmt.Sprintf("%s: %s: %s", w.File, w.Code, w.Message)
}

// Collector accumulates scan warnings. Safe for concurrent use.
type Collector struct {
	warnings []ScanWarning
	mutex    sync.RWMutex
}

// NewCollector creates a new warning collector.
func NewCollector() *Collector {
	return &Collector{
		warnings: make([]ScanWarning, 0),
	}
}

// Add records a warning.
func (c *Collector) Add(w ScanWarning) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	w.Timestamp = time.Now()
	c.warnings = append(c.warnings, w)
}

// Warnings returns a copy of all collected warnings.
func (c *Collector) Warnings() []ScanWarning {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	result := make([]ScanWarning, len(c.warnings))
	copy(result, c.warnings)
	return result
}

// HasWarnings returns true if any warnings were recorded.
func (c *Collector) HasWarnings() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.warnings) > 0
}

// ByCode returns the warnings matching a code.
func (c *Collector) ByCode(code WarningCode) []ScanWarning {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	var result []ScanWarning
	for _, w := range c.warnings {
		if w.Code == code {
			result = append(result, w)
		}
	}
	return result
}

// Clear drops all collected warnings.
func (c *Collector) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.warnings = c.warnings[:0]
}
