// Package watcher invalidates cached retrieval state when a watched
// document changes on disk.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
	"github.com/docchat-labs/docchat-cli/internal/logger"
)

// Watcher observes document files and drops the indexer's cached
// state when they are written, replaced, or removed. The next query
// then re-reads the document.
type Watcher struct {
	fw      *fsnotify.Watcher
	indexer driving.Indexer

	mu   sync.Mutex
	docs map[string]string // absolute path -> document name

	closeOnce sync.Once
}

// New creates a watcher feeding invalidations to the indexer.
func New(indexer driving.Indexer) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fw:      fw,
		indexer: indexer,
		docs:    make(map[string]string),
	}
	go w.loop()

	return w, nil
}

// Watch starts observing the document at docPath. The parent
// directory is watched so editors that replace the file atomically
// are still seen.
func (w *Watcher) Watch(docPath string) error {
	abs, err := filepath.Abs(docPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", docPath, err)
	}

	doc := domain.NewDocument(abs)

	w.mu.Lock()
	w.docs[abs] = doc.Name
	w.mu.Unlock()

	if err := w.fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	logger.Debug("Watching %q for changes", abs)
	return nil
}

// loop dispatches filesystem events until the watcher is closed.
func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handle invalidates the indexer cache for tracked paths.
func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	name, tracked := w.docs[abs]
	w.mu.Unlock()

	if !tracked {
		return
	}

	logger.Debug("Document %q changed (%s), invalidating", name, event.Op)
	w.indexer.Invalidate(name)
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fw.Close()
	})
	return err
}
