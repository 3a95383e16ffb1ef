package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lumi/lumi-bar/pkg/signals"
)

// DefaultWatchDebounce groups the create/rename/write burst of one save
const DefaultWatchDebounce = 100 * time.Millisecond

// Watch calls fn after the config file was changed by someone other than this
// store, until ctx is done. The parent directory is watched because atomic
// saves replace the file rather than write to it.
func (s *Store) Watch(ctx context.Context, debounce time.Duration, fn func()) error {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	d := signals.NewDebouncer(debounce, func() {
		if s.holdsOwnWrite() {
			s.logger.Debug("ignoring own save")
			return
		}
		fn()
	})
	defer d.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				s.logger.Debug("config changed on disk", "op", event.Op.String())
				d.Trigger()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("config watcher error", "error", err)
		}
	}
}

// holdsOwnWrite reports whether the file still has the content of the last Save
func (s *Store) holdsOwnWrite() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written != nil && bytes.Equal(data, s.written)
}
