package patterns

import (
	"regexp"
	"strings"
)

// headerField maps a canonical metadata name to the label used in a pattern
// file's header comment. The schema is fixed: labels are matched verbatim,
// case-insensitively, at the start of a header line.
type headerField struct {
	name  string
	label string
}

// headerSchema is the full set of recognized pattern header fields.
var headerSchema = []headerField{
	{"title", "Title"},
	{"slug", "Slug"},
	{"description", "Description"},
	{"viewportWidth", "Viewport Width"},
	{"inserter", "Inserter"},
	{"categories", "Categories"},
	{"keywords", "Keywords"},
	{"blockTypes", "Block Types"},
	{"postTypes", "Post Types"},
	{"templateTypes", "Template Types"},
}

// headerReadLimit bounds how much of a pattern file is inspected for header
// metadata. Headers live at the top of the file; anything past this is
// pattern content.
const headerReadLimit = 8 * 1024

// fieldPatterns holds one compiled matcher per schema field, built once at
// package init. Each matcher accepts the label at the start of a line,
// optionally preceded by comment punctuation, and captures the rest of the
// line as the value.
var fieldPatterns = buildFieldPatterns()

func buildFieldPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(headerSchema))
	for _, f := range headerSchema {
		patterns[f.name] = regexp.MustCompile(
			`(?im)^[ \t/*#@!<>-]*` + regexp.QuoteMeta(f.label) + `:(.*)$`,
		)
	}
	return patterns
}

// parseHeader extracts the raw header values from pattern file content.
// Fields absent from the header are absent from the result. Values are
// trimmed of surrounding whitespace and trailing comment terminators.
func parseHeader(content []byte) map[string]string {
	if len(content) > headerReadLimit {
		content = content[:headerReadLimit]
	}
	text := string(content)

	values := make(map[string]string, len(headerSchema))
	for _, f := range headerSchema {
		m := fieldPatterns[f.name].FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		value = strings.TrimSuffix(value, "-->")
		value = strings.TrimSuffix(value, "*/")
		value = strings.TrimSpace(value)
		if value != "" {
			values[f.name] = value
		}
	}
	return values
}

// splitList parses a comma-separated header value into an ordered list with
// empty tokens removed. The result preserves header order and duplicates;
// nil is returned when no non-empty tokens remain.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
	}
	return items
}

// isTruthy reports whether a header value opts a pattern into the inserter:
// case-insensitively "yes" or "true", nothing else.
func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "yes", "true":
		return true
	}
	return false
}
