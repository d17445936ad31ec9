// Package watcher reports changes to a configuration file.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are still seen. Bursts of
// events for the file are coalesced into one Event after a quiet period.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/glide/internal/logging"
)

// DefaultDebounce is the quiet period before an Event is delivered.
const DefaultDebounce = 100 * time.Millisecond

// Op is a set of file operations.
type Op uint8

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// Has reports whether op contains other.
func (op Op) Has(other Op) bool {
	return op&other != 0
}

// String returns the operations joined by "|".
func (op Op) String() string {
	var s string
	for _, n := range []struct {
		op   Op
		name string
	}{{OpCreate, "create"}, {OpWrite, "write"}, {OpRemove, "remove"}, {OpRename, "rename"}} {
		if op.Has(n.op) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return "none"
	}
	return s
}

// Event reports that the watched file changed.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero delivers every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		w.log = l
	}
}

// Watcher watches one file.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *logging.Logger

	events chan Event
	errors chan error

	mu      sync.Mutex
	pending *Event
	timer   *time.Timer
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New starts watching path. The file need not exist yet but its directory
// must.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		events:   make(chan Event, 8),
		errors:   make(chan error, 8),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.log == nil {
		w.log = logging.Nop()
	}
	w.log = w.log.WithComponent("config-watcher")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events delivers coalesced change events. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors delivers errors from the underlying watcher. It is closed by
// Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = nil
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()

	w.mu.Lock()
	close(w.events)
	close(w.errors)
	w.mu.Unlock()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}
	w.log.Debug("%s %s", op, ev.Name)

	event := Event{Path: w.path, Op: op, Time: time.Now()}
	if w.debounce == 0 {
		w.send(event)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Op |= op
		w.pending.Time = event.Time
		w.timer.Reset(w.debounce)
		return
	}
	w.pending = &event
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil || w.closed {
		return
	}
	event := *w.pending
	w.pending = nil
	w.send(event)
}

// send delivers event, dropping it if the consumer is behind and one is
// already queued.
func (w *Watcher) send(event Event) {
	select {
	case <-w.closeCh:
	case w.events <- event:
	default:
		w.log.Debug("dropping event for %s: consumer behind", event.Path)
	}
}

func convertOp(op fsnotify.Op) Op {
	var out Op
	if op.Has(fsnotify.Create) {
		out |= OpCreate
	}
	if op.Has(fsnotify.Write) {
		out |= OpWrite
	}
	if op.Has(fsnotify.Remove) {
		out |= OpRemove
	}
	if op.Has(fsnotify.Rename) {
		out |= OpRename
	}
	return out
}
