package patterns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeaderHTMLComment(t *testing.T) {
	content := []byte(`<!--
Title: Call To Action
Slug: demo/cta
Viewport Width: 800
-->
<div>content</div>
`)

	header := parseHeader(content)
	assert.Equal(t, "Call To Action", header["title"])
	assert.Equal(t, "demo/cta", header["slug"])
	assert.Equal(t, "800", header["viewportWidth"])
	assert.NotContains(t, header, "description")
}

func TestParseHeaderSingleLineComment(t *testing.T) {
	// The whole header packed onto comment-prefixed lines still parses.
	content := []byte("<!-- Title: Inline -->\n<!-- Slug: demo/inline -->\n<p></p>")

	header := parseHeader(content)
	assert.Equal(t, "Inline", header["title"])
	assert.Equal(t, "demo/inline", header["slug"])
}

func TestParseHeaderLabelsAreCaseInsensitive(t *testing.T) {
	content := []byte("<!--\ntitle: Lower\nSLUG: demo/lower\n-->\n")

	header := parseHeader(content)
	assert.Equal(t, "Lower", header["title"])
	assert.Equal(t, "demo/lower", header["slug"])
}

func TestParseHeaderEmptyValuesOmitted(t *testing.T) {
	content := []byte("<!--\nTitle: T\nSlug: demo/t\nCategories:\nDescription:   \n-->\n")

	header := parseHeader(content)
	assert.NotContains(t, header, "categories")
	assert.NotContains(t, header, "description")
}

func TestParseHeaderIgnoresContentPastReadLimit(t *testing.T) {
	padding := strings.Repeat("x", headerReadLimit)
	content := []byte("<!-- Title: Early -->\n" + padding + "\n<!-- Slug: demo/late -->\n")

	header := parseHeader(content)
	assert.Equal(t, "Early", header["title"])
	assert.NotContains(t, header, "slug")
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "foo", []string{"foo"}},
		{"spaces trimmed", " foo , bar ", []string{"foo", "bar"}},
		{"empty tokens dropped", "foo, bar,,baz", []string{"foo", "bar", "baz"}},
		{"only commas", ",,,", nil},
		{"duplicates kept in order", "foo,bar,foo", []string{"foo", "bar", "foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.input))
		})
	}
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"yes", "YES", "Yes", "true", "True", "TRUE"} {
		assert.True(t, isTruthy(v), v)
	}
	for _, v := range []string{"no", "false", "1", "on", "", "yess"} {
		assert.False(t, isTruthy(v), v)
	}
}
