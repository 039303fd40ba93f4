package driver

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watch calls `run` whenever a `.fml` file in one of `dirs` changes, until
// `ctx` is done. Bursts of events (editors often write a file in several
// steps) trigger a single run.
func Watch(ctx context.Context, dirs []string, run func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	// nil until a change is seen
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Ext(event.Name) != ".fml" || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) {
				continue
			}

			log.Debug("file changed", "path", event.Name, "op", event.Op.String())
			pending = time.After(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return err
		case <-pending:
			pending = nil
			run()
		}
	}
}
