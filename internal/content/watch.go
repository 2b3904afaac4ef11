package content

import (
	"context"
	"github.com/fsnotify/fsnotify"
	"github.com/myrjola/constellation/internal/errors"
	"log/slog"
	"path/filepath"
)

// Watch reloads the document whenever the source file changes. It blocks until ctx is done.
//
// The parent directory is watched instead of the file itself because editors often replace the file on save.
// A failed reload keeps the previous snapshot. Remote sources cannot be watched.
func (s *Store) Watch(ctx context.Context) error {
	if s.Remote() {
		return errors.New("cannot watch remote content", slog.String("source", s.source))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "new watcher")
	}
	defer func() {
		if err = watcher.Close(); err != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to close content watcher", errors.SlogError(err))
		}
	}()

	target := filepath.Clean(s.source)
	if err = watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrap(err, "watch content directory", slog.String("source", s.source))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "watching page content", slog.String("source", s.source))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			// Load logs failures itself.
			_ = s.Load(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.LogAttrs(ctx, slog.LevelError, "content watcher error", errors.SlogError(err))
		}
	}
}
