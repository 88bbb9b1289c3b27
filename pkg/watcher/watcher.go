package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor or a deploy produces into one reload.
const DefaultDebounce = 250 * time.Millisecond

// ErrNotDirectory is returned when the watched path is missing or not a directory.
var ErrNotDirectory = errors.New("watcher: not a directory")

// Watcher calls a function after files under a directory tree change.
type Watcher struct {
	dir      string
	onChange func(context.Context) error
	exts     map[string]struct{}
	debounce time.Duration
	logger   *slog.Logger
	ready    chan<- struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithExtensions limits the watcher to files with these extensions, given with or without the dot.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
			if ext != "" {
				w.exts["."+ext] = struct{}{}
			}
		}
	}
}

// WithDebounce sets the quiet period after the last event before onChange runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch errors and failed callbacks.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithReady receives a value once every directory is registered.
// Tests use it to avoid sleeping before they touch files.
func WithReady(ch chan<- struct{}) Option {
	return func(w *Watcher) { w.ready = ch }
}

// New creates a watcher over dir. onChange runs on the Run goroutine, never concurrently.
func New(dir string, onChange func(context.Context) error, opts ...Option) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watcher: onChange is required")
	}
	w := &Watcher{
		dir:      filepath.Clean(dir),
		onChange: onChange,
		exts:     make(map[string]struct{}),
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	if info, err := os.Stat(w.dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, w.dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw, w.dir); err != nil {
		return err
	}
	if w.ready != nil {
		w.ready <- struct{}{}
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, event.Name); err != nil {
						w.logger.WarnContext(ctx, "watcher: failed to watch new directory",
							slog.String("dir", event.Name), slog.Any("error", err))
					}
					continue
				}
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.onChange(ctx); err != nil {
				w.logger.WarnContext(ctx, "watcher: change handler failed",
					slog.String("dir", w.dir), slog.Any("error", err))
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "watcher: fsnotify error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if len(w.exts) == 0 {
		return true
	}
	_, ok := w.exts[strings.ToLower(filepath.Ext(event.Name))]
	return ok
}

// addTree registers root and its subdirectories; fsnotify is not recursive.
func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watcher: add %s: %w", path, err)
		}
		return nil
	})
}
