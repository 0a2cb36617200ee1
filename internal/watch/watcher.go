// Package watch delivers debounced change notifications for a
// directory tree, backing the validate command's watch mode.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period applied when none is configured.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a directory tree recursively and coalesces bursts of
// filesystem events into single change notifications.
type Watcher struct {
	root     string
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
	changes  chan struct{}
}

// New creates a watcher rooted at root. The tree is watched
// recursively; hidden directories are skipped.
func New(root string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
		changes:  make(chan struct{}, 1),
	}
	if err := w.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", root, err)
	}
	return w, nil
}

// Changes delivers one value per debounced burst of filesystem events.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run processes filesystem events until ctx is cancelled or the
// watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var pending *time.Timer

	for {
		select {
		case <-ctx.Done():
			if pending != nil {
				pending.Stop()
			}
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			// Removals and renames matter as much as writes: the audit
			// is about folders disappearing.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// New subtrees need their own watches.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.Debug("failed to watch new directory", "path", event.Name, "error", err)
					}
				}
			}

			w.logger.Debug("filesystem event", "op", event.Op.String(), "path", event.Name)

			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(w.debounce, w.notify)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Debug("watcher error", "error", err)
		}
	}
}

// notify signals a change without blocking; a pending notification
// already covers this burst.
func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// addRecursive adds dir and every non-hidden subdirectory to the watch.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil //nolint:nilerr // skip unreadable subtrees
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Debug("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}
