// Package watcher watches a theme's files during development and publishes
// typed invalidation events when pattern files or the theme configuration
// change. Rapid bursts of filesystem events are debounced into one
// notification.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spacedmonkey/blockpress/internal/hooks"
	"github.com/spacedmonkey/blockpress/internal/logging"
	"github.com/spacedmonkey/blockpress/internal/theme"
)

// ThemeWatcher watches the patterns directory and theme.json of one theme.
type ThemeWatcher struct {
	theme    *theme.Theme
	bus      *hooks.Bus
	logger   logging.Logger
	delay    time.Duration
	fsw      *fsnotify.Watcher
	mutex    sync.Mutex
	pending  map[hooks.EventKind]string
	timer    *time.Timer
	stopOnce sync.Once
}

// New creates a watcher for the theme, publishing on bus. delay is the
// debounce window; zero selects a sensible default.
func New(t *theme.Theme, bus *hooks.Bus, logger logging.Logger, delay time.Duration) (*ThemeWatcher, error) {
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	if logger == nil {
		logger = logging.Discard()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &ThemeWatcher{
		theme:   t,
		bus:     bus,
		logger:  logger.WithComponent("watcher"),
		delay:   delay,
		fsw:     fsw,
		pending: make(map[hooks.EventKind]string),
	}, nil
}

// Start begins watching and returns immediately; events are processed until
// the context is cancelled.
func (w *ThemeWatcher) Start(ctx context.Context) error {
	// The theme root covers theme.json; the patterns directory is
	// watched separately when present, since fsnotify is not recursive.
	if err := w.fsw.Add(w.theme.Root); err != nil {
		return err
	}
	if err := w.fsw.Add(w.theme.PatternsDir()); err != nil {
		w.logger.Debug(ctx, "patterns directory not watchable", "dir", w.theme.PatternsDir())
	}

	go w.loop(ctx)
	return nil
}

// Stop closes the underlying filesystem watcher.
func (w *ThemeWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		w.mutex.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mutex.Unlock()
		err = w.fsw.Close()
	})
	return err
}

func (w *ThemeWatcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ctx, event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn(ctx, err, "filesystem watcher error")
		}
	}
}

func (w *ThemeWatcher) handle(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	name := filepath.Base(event.Name)
	switch {
	case name == theme.ThemeJSONName:
		w.schedule(hooks.GlobalStylesUpdated, event.Name)
	case w.inPatternsDir(event.Name) && strings.HasSuffix(name, ".html"):
		w.schedule(hooks.PatternsInvalidated, event.Name)
	}
}

func (w *ThemeWatcher) inPatternsDir(path string) bool {
	return filepath.Dir(path) == w.theme.PatternsDir()
}

// schedule coalesces events inside the debounce window into one publish per
// event kind.
func (w *ThemeWatcher) schedule(kind hooks.EventKind, subject string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.pending[kind] = subject
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.flush)
}

func (w *ThemeWatcher) flush() {
	w.mutex.Lock()
	pending := w.pending
	w.pending = make(map[hooks.EventKind]string)
	w.mutex.Unlock()

	for kind, subject := range pending {
		w.bus.Publish(kind, subject)
	}
}
