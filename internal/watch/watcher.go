// Package watch provides a file system watcher that rebuilds the workbook
// whenever one of the source files changes.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config holds the watcher configuration.
type Config struct {
	// Paths are the source files to watch. Their parent directories are
	// registered with the watcher so that files recreated by editors
	// (write-temp-then-rename) are still picked up.
	Paths []string
	// Debounce is how long to wait after the last event before
	// rebuilding. Zero means 500ms.
	Debounce time.Duration
}

// Handler is called after a watched source changed (debounced).
type Handler func(path string) error

// Watcher monitors source files and triggers a rebuild on change.
type Watcher struct {
	Config  Config
	Logger  *log.Logger
	Handler Handler

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	watched  map[string]bool
	debounce map[string]*time.Timer
}

// New creates a Watcher for the given configuration.
func New(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	if config.Debounce <= 0 {
		config.Debounce = 500 * time.Millisecond
	}

	watched := make(map[string]bool, len(config.Paths))
	for _, p := range config.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("could not resolve %s: %w", p, err)
		}
		watched[abs] = true
	}

	return &Watcher{
		Config:   config,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
		watcher:  fsw,
		watched:  watched,
		debounce: make(map[string]*time.Timer),
	}, nil
}

// Start begins watching. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]bool)
	for path := range w.watched {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}

	w.Logger.Printf("Watching %d file(s) in %d directory(ies)", len(w.watched), len(dirs))

	for {
		select {
		case <-ctx.Done():
			w.Logger.Println("Stopping watcher")
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("Error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}

	path, err := filepath.Abs(event.Name)
	if err != nil || !w.watched[path] {
		return
	}

	// Debounce: editors fire several events per save.
	w.mu.Lock()
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(w.Config.Debounce, func() {
		w.process(path)
	})
	w.mu.Unlock()
}

func (w *Watcher) process(path string) {
	if w.Handler == nil {
		w.Logger.Printf("Changed: %s [no handler]", path)
		return
	}
	if err := w.Handler(path); err != nil {
		w.Logger.Printf("Error rebuilding after %s: %v", path, err)
		return
	}
	w.Logger.Printf("Rebuilt after change to %s", path)
}
