// Package watcher reloads a scene session when its source SVG file
// changes on disk.
package watcher

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce absorbs the burst of write events most editors emit for one
// save.
const debounce = 100 * time.Millisecond

// FileWatcher invokes a callback with the new document text whenever
// the watched file is rewritten.
type FileWatcher struct {
	path     string
	onChange func(document string)
	logger   *zap.Logger
}

// New creates a watcher for path. onChange runs on the watcher
// goroutine, once per settled write.
func New(path string, onChange func(document string), logger *zap.Logger) *FileWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWatcher{path: path, onChange: onChange, logger: logger}
}

// Run watches until the context is cancelled.
func (w *FileWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(w.path); err != nil {
		return err
	}
	w.logger.Info("watching document", zap.String("path", w.path))

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-fire:
			data, err := os.ReadFile(w.path)
			if err != nil {
				w.logger.Warn("reload read failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.onChange(string(data))
		}
	}
}
