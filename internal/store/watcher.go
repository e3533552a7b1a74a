package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/saborlab/sabor/internal/storage"
)

// Watch starts an fsnotify watcher on the file backend's data directory and
// reloads the collections when either record file changes on disk (external
// edit, restore from backup). Events are debounced so a burst of writes
// triggers a single reload; the store's own write-backs are filtered out by
// checksum inside Reload. Blocks until ctx is cancelled.
func Watch(ctx context.Context, s *Store, backend *storage.File, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(backend.Root()); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", backend.Root()))

	watched := map[string]struct{}{
		RecipesKey + ".json":    {},
		CategoriesKey + ".json": {},
	}

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if _, ok := watched[filepath.Base(ev.Name)]; !ok {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			scheduleReload()

		case <-reloadCh:
			if err := s.Reload(); err != nil {
				logger.Warn("watcher: reload failed", slog.String("error", err.Error()))
			} else {
				logger.Debug("watcher: reloaded collections")
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}
