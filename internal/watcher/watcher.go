// Package watcher monitors the uploads directory and hands new videos to the
// pipeline. Handling is strictly sequential: the transcode is the bottleneck,
// so at most one video is ever in flight.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler processes one newly uploaded video path.
type Handler func(ctx context.Context, path string) error

// settleDelay gives the writer time to finish before the file is read.
const settleDelay = 500 * time.Millisecond

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".mkv": true, ".webm": true, ".avi": true, ".m4v": true,
}

type Watcher struct {
	dir     string
	handler Handler
	log     *slog.Logger
	fsw     *fsnotify.Watcher
}

func New(dir string, handler Handler, log *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{dir: dir, handler: handler, log: log, fsw: fsw}, nil
}

// Run blocks until ctx is cancelled, handling each created video file in
// turn. Handler failures are logged; the watcher keeps running.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Info("watching for uploads", "dir", w.dir)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) || !isVideoFile(event.Name) {
				continue
			}
			w.log.Info("new upload detected", "file", event.Name)
			select {
			case <-ctx.Done():
				w.log.Info("watcher stopped")
				return ctx.Err()
			case <-time.After(settleDelay):
			}
			if err := w.handler(ctx, event.Name); err != nil {
				w.log.Error("failed to process upload", "file", event.Name, "error", err)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) Close() error { return w.fsw.Close() }

func isVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}
