package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ggoodman/discord-interactions-go/command"
)

// ChangeFunc receives the result of reloading a watched manifest.
type ChangeFunc func(ctx context.Context, cmds []command.Command, err error)

// Watch reloads the manifest at path whenever it changes on disk and passes
// the result to onChange. Bursts of events closer together than debounce
// produce a single reload. Watch blocks until ctx is done.
//
// onChange is called on the goroutine running Watch: calls never overlap and
// none is in progress once Watch has returned.
//
// The parent directory is watched rather than the file, so editors that
// save by writing a temporary file and renaming it over path are seen.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange ChangeFunc) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("manifest: start watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("manifest: watch %s: %w", filepath.Dir(abs), err)
	}

	reload := func() {
		cmds, err := LoadFile(abs)
		onChange(ctx, cmds, err)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
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
		case <-fire:
			fire = nil
			if ctx.Err() != nil {
				return nil
			}
			reload()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce <= 0 {
				reload()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			onChange(ctx, nil, fmt.Errorf("manifest: watch: %w", err))
		}
	}
}
