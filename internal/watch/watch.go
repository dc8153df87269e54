// Package watch rebuilds a presentation when files under its source directory change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// ErrNotDirectory indicates the watched path is not a directory.
var ErrNotDirectory = errors.New("watch target is not a directory")

// Rebuild regenerates the presentation. Errors are logged and watching continues.
type Rebuild func(ctx context.Context) error

// Options configures a watch loop.
type Options struct {
	Debounce time.Duration // Zero selects DefaultDebounce
	Ignore   []string      // Files whose changes never trigger a rebuild (e.g. the destination)
	Logger   *slog.Logger  // Nil discards logs
}

// Run watches dir recursively and calls rebuild after each settled batch of
// changes, until ctx is canceled. Rebuilds run on the calling goroutine, so
// at most one is in flight; changes seen during a rebuild are coalesced into
// the next one. Hidden files and directories are ignored.
func Run(ctx context.Context, dir string, rebuild Rebuild, opts Options) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	l := newLoop(rebuild, opts)
	if err := l.addTree(w, dir); err != nil {
		return err
	}
	l.logger.Info("watching for changes", "dir", dir)

	return l.run(ctx, w.Events, w.Errors, func(path string) {
		if err := l.addTree(w, path); err != nil {
			l.logger.Warn("cannot watch directory", "dir", path, "error", err)
		}
	})
}

// loop holds the state of one watch session.
type loop struct {
	rebuild  Rebuild
	debounce time.Duration
	ignore   map[string]bool
	logger   *slog.Logger
}

func newLoop(rebuild Rebuild, opts Options) *loop {
	l := &loop{
		rebuild:  rebuild,
		debounce: opts.Debounce,
		ignore:   make(map[string]bool, len(opts.Ignore)),
		logger:   opts.Logger,
	}
	if l.debounce <= 0 {
		l.debounce = DefaultDebounce
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for _, p := range opts.Ignore {
		if abs, err := filepath.Abs(p); err == nil {
			l.ignore[abs] = true
		}
	}
	return l
}

// addTree adds dir and its non-hidden subdirectories to the watcher.
func (l *loop) addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// run is the event loop. onCreateDir is called for newly created directories.
func (l *loop) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, onCreateDir func(string)) error {
	// Timer channels are unbuffered since Go 1.23: Reset never delivers a stale tick.
	timer := time.NewTimer(l.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !l.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) && onCreateDir != nil {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					onCreateDir(event.Name)
				}
			}
			l.logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			timer.Reset(l.debounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			l.logger.Warn("watch error", "error", err)

		case <-timer.C:
			l.logger.Info("rebuilding")
			if err := l.rebuild(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				l.logger.Error("rebuild failed", "error", err)
			}
		}
	}
}

// relevant reports whether an event should trigger a rebuild.
func (l *loop) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if isHidden(event.Name) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err == nil && l.ignore[abs] {
		return false
	}
	return true
}

// isHidden reports whether the base name starts with a dot, or is an editor
// backup file.
func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~")
}
