// Package patterns discovers a theme's block patterns and maintains the
// versioned cache entry that spares repeat scans.
//
// The scanner lists the theme's patterns directory, parses each file's
// leading header comment against a fixed schema, normalizes the typed fields,
// and persists the full result through the option store keyed by theme
// identity. A cached entry is only trusted while its recorded version matches
// the theme's declared version; any mismatch forces a full rescan. Malformed
// files never abort a scan: records missing required fields are dropped with
// a warning and everything else proceeds.
package patterns

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/spacedmonkey/blockpress/internal/errors"
	"github.com/spacedmonkey/blockpress/internal/logging"
	"github.com/spacedmonkey/blockpress/internal/theme"
	"github.com/spacedmonkey/blockpress/internal/types"
)

// cacheKeyPrefix prefixes the option key the cache entry is stored under.
// The full key is the prefix plus the theme's stylesheet identifier.
const cacheKeyPrefix = "theme_patterns_"

// patternGlob matches candidate pattern files directly under the patterns
// directory. Subdirectories are not descended into.
const patternGlob = "*.html"

// slugPattern is the allowed slug character set.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9/_-]+$`)

// Store is the subset of the option store the scanner needs.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, autoload bool) error
}

// Options controls the scanner's caching policy.
type Options struct {
	// DisableCache skips both cache reads and writes. Set when the
	// deployment runs in theme development mode.
	DisableCache bool
	// Multisite suppresses the autoload hint on persisted entries, since
	// per-site options must not be autoloaded network-wide.
	Multisite bool
}

// Scanner discovers block patterns for themes and keeps the per-theme cache
// entry current.
type Scanner struct {
	store    Store
	logger   logging.Logger
	warnings *errors.Collector
	opts     Options
}

// NewScanner creates a pattern scanner. A nil logger discards diagnostics.
func NewScanner(s Store, logger logging.Logger, opts Options) *Scanner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scanner{
		store:    s,
		logger:   logger.WithComponent("patterns"),
		warnings: errors.NewCollector(),
		opts:     opts,
	}
}

// Warnings returns the collector holding diagnostics from past scans.
func (s *Scanner) Warnings() *errors.Collector {
	return s.warnings
}

// CacheKey returns the option key a theme's cache entry is stored under.
func CacheKey(t *theme.Theme) string {
	return cacheKeyPrefix + t.Stylesheet
}

// GetPatterns returns the theme's pattern map, from cache when a valid entry
// exists and from a fresh directory scan otherwise. A fresh scan is persisted
// before returning, unless caching is disabled. The result is never nil.
func (s *Scanner) GetPatterns(ctx context.Context, t *theme.Theme) map[string]types.PatternFile {
	canCache := !s.opts.DisableCache

	if canCache {
		if entry, ok := s.cachedEntry(t); ok {
			return entry.Patterns
		}
	}

	entry := types.PatternCacheEntry{
		Version:  t.Version,
		Patterns: s.scan(ctx, t),
	}

	if canCache {
		s.persist(ctx, t, entry)
	}

	return entry.Patterns
}

// cachedEntry loads the stored entry for a theme and validates its version.
func (s *Scanner) cachedEntry(t *theme.Theme) (types.PatternCacheEntry, bool) {
	var entry types.PatternCacheEntry

	data, ok := s.store.Get(CacheKey(t))
	if !ok {
		return entry, false
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return entry, false
	}
	if entry.Version != t.Version || entry.Patterns == nil {
		return entry, false
	}
	return entry, true
}

// persist replaces the theme's stored entry wholesale. Entries autoload on
// single-site deployments so the pattern map rides along with the rest of
// the eagerly loaded options.
func (s *Scanner) persist(ctx context.Context, t *theme.Theme, entry types.PatternCacheEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		s.logger.Error(ctx, err, "encoding pattern cache entry", "theme", t.Stylesheet)
		return
	}
	autoload := !s.opts.Multisite
	if err := s.store.Set(CacheKey(t), data, autoload); err != nil {
		s.logger.Error(ctx, err, "persisting pattern cache entry", "theme", t.Stylesheet)
	}
}

// scan rebuilds the pattern map from the theme's patterns directory. An
// absent directory or a directory with no matching files yields an empty,
// non-nil map.
func (s *Scanner) scan(ctx context.Context, t *theme.Theme) map[string]types.PatternFile {
	patterns := make(map[string]types.PatternFile)

	dir := t.PatternsDir()
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return patterns
	}

	files, err := filepath.Glob(filepath.Join(dir, patternGlob))
	if err != nil {
		// Only malformed glob patterns error here, and ours is fixed.
		return patterns
	}

	for _, file := range files {
		rel, err := filepath.Rel(dir, file)
		if err != nil {
			continue
		}
		record, ok := s.parseFile(ctx, t, file, rel)
		if !ok {
			continue
		}
		patterns[rel] = record
	}

	return patterns
}

// parseFile extracts a pattern record from one file. The boolean result is
// false when the file must be skipped: unreadable, missing slug, or missing
// title. An invalid slug is warned about but does not skip the record.
func (s *Scanner) parseFile(ctx context.Context, t *theme.Theme, path, rel string) (types.PatternFile, bool) {
	var record types.PatternFile

	content, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn(ctx, err, "reading pattern file", "file", rel, "theme", t.Stylesheet)
		return record, false
	}

	header := parseHeader(content)

	slug, hasSlug := header["slug"]
	if !hasSlug {
		s.warn(ctx, errors.WarningMissingSlug, rel,
			"pattern file requires a Slug header field")
		return record, false
	}
	title, hasTitle := header["title"]
	if !hasTitle {
		s.warn(ctx, errors.WarningMissingTitle, rel,
			"pattern file requires a Title header field")
		return record, false
	}

	if !slugPattern.MatchString(slug) {
		// The record is still included; only the slug format is
		// suspect.
		s.warn(ctx, errors.WarningInvalidSlug, rel,
			"pattern slug "+strconv.Quote(slug)+" contains invalid characters")
	}

	record.Slug = slug
	record.Title = title
	record.Description = header["description"]

	if raw, ok := header["viewportWidth"]; ok {
		if width, err := strconv.Atoi(raw); err == nil {
			record.ViewportWidth = width
		}
	}
	if raw, ok := header["inserter"]; ok {
		if isTruthy(raw) {
			v := true
			record.Inserter = &v
		}
	}

	record.Categories = splitList(header["categories"])
	record.Keywords = splitList(header["keywords"])
	record.BlockTypes = splitList(header["blockTypes"])
	record.PostTypes = splitList(header["postTypes"])
	record.TemplateTypes = splitList(header["templateTypes"])

	return record, true
}

func (s *Scanner) warn(ctx context.Context, code errors.WarningCode, file, msg string) {
	w := errors.ScanWarning{Code: code, File: file, Message: msg}
	s.warnings.Add(w)
	s.logger.Warn(ctx, &w, "skipping or flagging pattern file", "file", file, "code", string(code))
}
