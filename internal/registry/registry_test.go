package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacedmonkey/blockpress/internal/types"
)

func pattern(slug, title string) types.PatternFile {
	return types.PatternFile{Slug: slug, Title: title}
}

func TestRegisterAndGet(t *testing.T) {
	r := NewPatternRegistry()
	defer r.Close()

	r.Register("hero.html", pattern("theme/hero", "Hero"))

	got, ok := r.Get("hero.html")
	require.True(t, ok)
	assert.Equal(t, "theme/hero", got.Slug)
	assert.Equal(t, 1, r.Count())
}

func TestRemove(t *testing.T) {
	r := NewPatternRegistry()
	defer r.Close()

	r.Register("hero.html", pattern("theme/hero", "Hero"))
	r.Remove("hero.html")

	_, ok := r.Get("hero.html")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Count())
}

func TestGetAllReturnsCopy(t *testing.T) {
	r := NewPatternRegistry()
	defer r.Close()

	r.Register("hero.html", pattern("theme/hero", "Hero"))

	all := r.GetAll()
	delete(all, "hero.html")

	assert.Equal(t, 1, r.Count())
}

func collectEvents(t *testing.T, ch <-chan types.PatternEvent, n int) []types.PatternEvent {
	t.Helper()
	events := make([]types.PatternEvent, 0, n)
	for len(events) < n {
		select {
		case ev := <-ch:
			events = append(events, ev)
		case <-time.After(time.Second):
			t.Fatalf("timed out after %d of %d events", len(events), n)
		}
	}
	return events
}

func TestWatchReceivesLifecycleEvents(t *testing.T) {
	r := NewPatternRegistry()
	defer r.Close()

	ch := r.Watch()

	r.Register("hero.html", pattern("theme/hero", "Hero"))
	r.Register("hero.html", pattern("theme/hero", "Hero v2"))
	r.Remove("hero.html")

	events := collectEvents(t, ch, 3)
	assert.Equal(t, types.EventTypeAdded, events[0].Type)
	assert.Equal(t, types.EventTypeUpdated, events[1].Type)
	require.NotNil(t, events[1].Pattern)
	assert.Equal(t, "Hero v2", events[1].Pattern.Title)
	assert.Equal(t, types.EventTypeRemoved, events[2].Type)
	assert.Nil(t, events[2].Pattern)
}

func TestReplaceEmitsDiff(t *testing.T) {
	r := NewPatternRegistry()
	defer r.Close()

	r.Register("keep.html", pattern("theme/keep", "Keep"))
	r.Register("drop.html", pattern("theme/drop", "Drop"))

	ch := r.Watch()
	r.Replace(map[string]types.PatternFile{
		"keep.html": pattern("theme/keep", "Keep v2"),
		"new.html":  pattern("theme/new", "New"),
	})

	events := collectEvents(t, ch, 3)
	byPath := make(map[string]types.EventType, len(events))
	for _, ev := range events {
		byPath[ev.Path] = ev.Type
	}
	assert.Equal(t, types.EventTypeRemoved, byPath["drop.html"])
	assert.Equal(t, types.EventTypeUpdated, byPath["keep.html"])
	assert.Equal(t, types.EventTypeAdded, byPath["new.html"])

	assert.Equal(t, 2, r.Count())
	got, _ := r.Get("keep.html")
	assert.Equal(t, "Keep v2", got.Title)
}

func TestUnWatchClosesChannel(t *testing.T) {
	r := NewPatternRegistry()
	defer r.Close()

	ch := r.Watch()
	r.UnWatch(ch)

	_, open := <-ch
	assert.False(t, open)

	// Events after UnWatch must not panic on the closed channel.
	r.Register("hero.html", pattern("theme/hero", "Hero"))
}

func TestCloseClosesAllWatchers(t *testing.T) {
	r := NewPatternRegistry()

	a := r.Watch()
	b := r.Watch()
	r.Close()

	_, openA := <-a
	_, openB := <-b
	assert.False(t, openA)
	assert.False(t, openB)
	assert.Equal(t, 0, r.Count())
}
