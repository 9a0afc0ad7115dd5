package importer

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"kwmap/internal/debounce"
	"kwmap/internal/logging"
)

// Change reports that a watched workbook was rewritten.
type Change struct {
	Kind Kind
	Path string
}

// Watcher reports rewrites of the loaded workbooks. Editors save through
// temp files and renames, so the parent directory is watched and bursts
// of events per file are coalesced.
type Watcher struct {
	fs      *fsnotify.Watcher
	settle  *debounce.Keyed
	log     *logging.Logger
	changes chan Change
	done    chan struct{}
	wg      sync.WaitGroup
	sends   sync.WaitGroup // settled callbacks that may still send

	mu     sync.Mutex
	closed bool
	paths  map[string]Kind // cleaned absolute path → kind
	dirs   map[string]bool
}

// NewWatcher starts a watcher that waits settle after the last event on a
// file before reporting it.
func NewWatcher(settle time.Duration, log *logging.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if log == nil {
		log = logging.Nop(logging.CategoryWatch)
	}
	w := &Watcher{
		fs:      fw,
		settle:  debounce.NewKeyed(settle),
		log:     log,
		changes: make(chan Change, 4),
		done:    make(chan struct{}),
		paths:   make(map[string]Kind),
		dirs:    make(map[string]bool),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Changes delivers coalesced rewrite notifications. The channel is closed
// by Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Watch starts reporting rewrites of path as kind. A later call with the
// same kind replaces the previous path.
func (w *Watcher) Watch(kind Kind, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	abs = filepath.Clean(abs)
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	for p, k := range w.paths {
		if k == kind {
			delete(w.paths, p)
		}
	}
	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.paths[abs] = kind
	w.log.Info("watching", zap.String("kind", string(kind)), zap.String("path", abs))
	return nil
}

// Close stops the watcher and closes Changes. Pending notifications are
// dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	w.settle.CancelAll()
	err := w.fs.Close()
	w.wg.Wait()
	w.sends.Wait()
	close(w.changes)
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	kind, ok := w.paths[path]
	w.mu.Unlock()
	if !ok {
		return
	}

	w.log.Debug("event", zap.String("op", ev.Op.String()), zap.String("path", path))
	w.settle.Debounce(path, func() {
		w.mu.Lock()
		if w.closed {
			w.mu.Unlock()
			return
		}
		w.sends.Add(1)
		w.mu.Unlock()
		defer w.sends.Done()

		select {
		case w.changes <- Change{Kind: kind, Path: path}:
		case <-w.done:
		}
	})
}
