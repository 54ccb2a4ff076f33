package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zhubert/parley/internal/logger"
)

// watchDebounce lets an editor finish writing before the file is reread.
const watchDebounce = 100 * time.Millisecond

// Watch reloads the file at path whenever it changes on disk and passes
// the fresh config to onChange. Files that fail to load are logged and
// skipped. Watch returns once the watcher is running; it stops when ctx is
// done.
//
// The parent directory is watched rather than the file, since many editors
// replace files by renaming over them.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return err
	}

	log := logger.WithComponent("config")
	go func() {
		defer w.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					timer.Reset(watchDebounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				cfg, err := LoadFrom(path)
				if err != nil {
					log.Warn("reload failed", "path", path, "error", err)
					continue
				}
				log.Info("config reloaded", "path", path)
				onChange(cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("watch error", "error", err)
			}
		}
	}()
	return nil
}
