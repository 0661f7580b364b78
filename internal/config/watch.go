package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/lc/yamlnode/internal/log"
	"github.com/lc/yamlnode/internal/node"
)

// Watch reloads the store whenever its file is written or recreated and
// passes the new root to onReload. It watches the parent directory so
// atomic replacements are seen. A reload that fails is logged and the
// previous root stays in place. Watching stops when ctx is done.
//
// onReload runs on the watcher goroutine.
func (s *Store) Watch(ctx context.Context, onReload func(*node.Node)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(s.path)
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if err := s.Load(); err != nil {
					log.Warn("reload failed; keeping previous document", "path", s.path, "error", err)
					continue
				}
				log.Info("configuration reloaded", "path", s.path)
				if onReload != nil {
					onReload(s.Root())
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Error("watcher error", "path", s.path, "error", err)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
