package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/talgya/ghost-cookies/internal/render"
)

// themeDebounce coalesces the burst of events an editor save produces.
const themeDebounce = 200 * time.Millisecond

// WatchTheme reloads path whenever it changes and passes the resolved
// palette to apply. A file that fails to read or parse yields the default
// palette. A file with an invalid shop section is skipped until fixed.
// It blocks until ctx is cancelled.
func WatchTheme(ctx context.Context, path string, apply func(render.Palette)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory: editors often replace the file rather than write it.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)
	slog.Info("watching theme", "path", target)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
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

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(themeDebounce)
			} else {
				timer.Reset(themeDebounce)
			}
			timerC = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("theme watcher error", "error", err)

		case <-timerC:
			timerC = nil
			cfg, err := LoadOrDefault(target)
			if err != nil {
				slog.Warn("theme not reloaded", "path", target, "error", err)
				continue
			}
			apply(cfg.Palette())
			slog.Info("theme reloaded", "path", target)
		}
	}
}
