package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of writes from editors into one reload.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a tracker settings file whenever it changes on disk and
// hands the result to Apply. Files that fail to parse are logged and skipped.
type Watcher struct {
	Path     string
	Apply    func(TrackerFile)
	Logger   *slog.Logger
	Debounce time.Duration

	fs     *fsnotify.Watcher
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher returns a Watcher for path. Call Start to begin watching.
func NewWatcher(path string, logger *slog.Logger, apply func(TrackerFile)) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{Path: path, Apply: apply, Logger: logger, Debounce: DefaultDebounce}
}

// Start watches the directory containing Path, so that replace-on-save
// editors are handled. It returns once the watch is registered.
func (w *Watcher) Start(ctx context.Context) error {
	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return err
	}
	w.Path = abs

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	w.fs = fs

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.Path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.Debounce, w.reload)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.Logger.Warn("tracker file watch error", "path", w.Path, "error", err)
		}
	}
}

func (w *Watcher) reload() {
	tf, err := LoadTrackerFile(w.Path)
	if err != nil {
		w.Logger.Warn("ignoring tracker file change", "path", w.Path, "error", err)
		return
	}
	w.Logger.Info("reloaded tracker file", "path", w.Path, "threshold", tf.QuickActionThreshold)
	if w.Apply != nil {
		w.Apply(tf)
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	if w.fs == nil {
		return nil
	}
	w.cancel()
	err := w.fs.Close()
	w.wg.Wait()
	return err
}
