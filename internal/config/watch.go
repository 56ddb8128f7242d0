package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch re-reads the config file whenever it changes and hands each
// successfully parsed Config to onChange. It blocks until ctx is cancelled
// and is only started in interval mode; a run-once invocation reads the
// config exactly once.
//
// A failed reload (invalid YAML, validation error) is logged and swallowed so
// the running tracker keeps its previous config.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}
	slog.Info("config: watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if reload(path, event, onChange) {
				// Atomic-save editors replace the inode via rename; re-add
				// the path so the watch survives the swap.
				_ = watcher.Add(path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}

// reload handles one fsnotify event. It reports whether the file was
// re-parsed, regardless of whether parsing succeeded.
func reload(path string, event fsnotify.Event, onChange func(*Config)) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	cfg, err := Load(path)
	if err != nil {
		slog.Error("config: reload failed — keeping previous config", "path", path, "err", err)
		return true
	}

	slog.Info("config: reloaded", "path", path)
	onChange(cfg)
	return true
}
