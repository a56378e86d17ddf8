// Package watcher recursively watches a directory tree with fsnotify and
// emits debounced change notifications, adapted from the teacher's
// filebrowser watcher: same skip list, same 100ms trailing-edge debounce
// via time.AfterFunc rather than a reusable timer object.
package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

var skipDirs = map[string]bool{
	".git": true, "node_modules": true, "vendor": true, ".next": true,
	"dist": true, "build": true, "__pycache__": true, ".venv": true,
	"venv": true, ".idea": true, ".vscode": true,
}

const debounceDelay = 100 * time.Millisecond

// Event reports that something changed under Root.
type Event struct {
	Root string
}

// Watcher recursively watches one root directory.
type Watcher struct {
	root string
	fsw  *fsnotify.Watcher
	out  chan Event

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// New starts watching root recursively, skipping the usual noisy/large
// directories.
func New(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		root: root,
		fsw:  fsw,
		out:  make(chan Event, 1),
		done: make(chan struct{}),
	}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != dir && (skipDirs[name] || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.addRecursive(ev.Name)
				}
			}
			w.scheduleNotify()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) scheduleNotify() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, func() {
		select {
		case w.out <- Event{Root: w.root}:
		default:
		}
	})
}

// Events returns the channel of debounced change notifications.
func (w *Watcher) Events() <-chan Event { return w.out }

// Stop tears down the underlying fsnotify watcher.
func (w *Watcher) Stop() {
	close(w.done)
	w.fsw.Close()
}
