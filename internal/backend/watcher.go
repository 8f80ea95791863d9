package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindDataset Kind = iota
)

// Event conveys updated data or an error from a reload.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Loader reads the watched source.
type Loader func(ctx context.Context) (interface{}, error)

// Watcher reloads a file whenever it changes on disk and publishes events.
// Changes are picked up through fsnotify on the parent directory, so
// editors that save by rename are seen too. A ticker comparing the
// modification time covers filesystems that do not deliver notifications.
type Watcher struct {
	path     string
	interval time.Duration
	load     Loader
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	fs     *fsnotify.Watcher
	dirty  chan struct{}
	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. The first event is emitted only after
// the file changes; callers load the initial state themselves.
func NewWatcher(path string, interval time.Duration, load Loader) (*Watcher, error) {
	if load == nil {
		return nil, fmt.Errorf("backend: nil loader")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("backend: watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		interval: interval,
		load:     load,
		throttle: newThrottle(250 * time.Millisecond),
		ctx:      ctx,
		cancel:   cancel,
		fs:       fsw,
		dirty:    make(chan struct{}, 1),
		events:   make(chan Event, 16),
	}

	w.wg.Add(3)
	go w.watchNotify()
	go w.watchModTime()
	go w.reload()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Stop cancels the watcher. A reload in flight runs to completion; use Wait
// if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all goroutines have exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) markDirty() {
	select {
	case w.dirty <- struct{}{}:
	default:
	}
}

func (w *Watcher) watchNotify() {
	defer w.wg.Done()
	defer w.fs.Close()
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.markDirty()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.send(Event{Kind: KindDataset, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) watchModTime() {
	defer w.wg.Done()
	if w.interval <= 0 {
		return
	}
	last := modTime(w.path)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if mt := modTime(w.path); !mt.Equal(last) {
				last = mt
				w.markDirty()
			}
		}
	}
}

func (w *Watcher) reload() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.dirty:
		}
		// editors often write in bursts; coalesce them
		if !w.throttle.wait(w.ctx) {
			return
		}
		select {
		case <-w.dirty:
		default:
		}
		data, err := w.load(w.ctx)
		if !w.send(Event{Kind: KindDataset, Data: data, Err: err}) {
			return
		}
	}
}

func (w *Watcher) send(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
