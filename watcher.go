package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/docqa/askdocs/readers"
	"github.com/fsnotify/fsnotify"
)

// DropWatcher ingests documents dropped into a directory. Files are indexed
// under their base name; removing a file removes its chunks from the index.
// Rapid write events for the same path are merged within delay.
type DropWatcher struct {
	log   *slog.Logger
	reg   *DocRegistry
	root  string
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func NewDropWatcher(reg *DocRegistry, root string, delay time.Duration, log *slog.Logger) *DropWatcher {
	return &DropWatcher{
		log:     log,
		reg:     reg,
		root:    root,
		delay:   delay,
		pending: make(map[string]*time.Timer),
	}
}

// Sync ingests every supported file already present under the drop root.
// Unsupported files are skipped with a warning, extraction failures skip the
// file without failing the sync.
func (w *DropWatcher) Sync(ctx context.Context) error {
	return filepath.Walk(w.root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		w.ingest(ctx, path)
		return nil
	})
}

// Watch blocks until ctx is cancelled, reacting to file events under the
// drop root.
func (w *DropWatcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, ev)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error", "error", err)
		}
	}
}

func (w *DropWatcher) handle(ctx context.Context, ev fsnotify.Event) {
	switch {
	case ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write):
		w.scheduleIngest(ctx, ev.Name)

	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		filename := filepath.Base(ev.Name)
		if err := w.reg.DeleteDocument(ctx, filename); err != nil {
			w.log.Error("failed to remove document from index", "file", filename, "error", err)
			return
		}
		w.log.Info("document removed", "file", filename)
	}
}

// scheduleIngest delays ingestion so editors writing a file in several bursts
// trigger a single re-index.
func (w *DropWatcher) scheduleIngest(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}

	w.pending[path] = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		w.ingest(ctx, path)
	})
}

func (w *DropWatcher) ingest(ctx context.Context, path string) {
	filename := filepath.Base(path)
	if !w.reg.Supported(filename) {
		w.log.Warn("unsupported file", "file", path)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return
		}
		w.log.Error("failed to read file", "file", path, "error", err)
		return
	}

	res, err := w.reg.ProcessAndIndex(ctx, data, filename)
	if err != nil {
		if errors.Is(err, readers.ErrParse) {
			w.log.Warn("skipping unreadable document", "file", path, "error", err)
			return
		}
		w.log.Error("failed to index document", "file", path, "error", err)
		return
	}

	if res.Truncated {
		w.log.Warn("document indexed with truncated text", "file", path, "chunks", res.Chunks)
	}
}
