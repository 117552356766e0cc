package indexing

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"rbxnav/internal/config"
	"rbxnav/internal/debug"
)

// Watcher monitors the project tree and triggers a debounced rebuild when
// source or tree files change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	cfg      *config.Config
	debounce time.Duration

	onChange func()

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher that invokes onChange after events settle.
func NewWatcher(cfg *config.Config, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	debounceMs := cfg.Scan.WatchDebounceMs
	if debounceMs <= 0 {
		debounceMs = 200
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		watcher:  fsw,
		cfg:      cfg,
		debounce: time.Duration(debounceMs) * time.Millisecond,
		onChange: onChange,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start adds watches for every directory under the root and begins
// processing events.
func (w *Watcher) Start() error {
	root := w.cfg.Project.Root
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go w.run()
	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debug.LogIndex("watch error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	// New directories need their own watch before their contents show up.
	if event.Op&fsnotify.Create != 0 {
		_ = w.watcher.Add(event.Name)
	}
	debug.LogIndex("change detected: %s", event.Name)
	w.schedule()
}

// schedule resets the debounce timer; onChange fires once events settle.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.ctx.Done():
			return
		default:
		}
		w.onChange()
	})
}

// Close stops event processing and releases the underlying watcher. Safe to
// call once Start has returned; pending debounce timers are cancelled.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return err
}
