// Package slip manages live measurement-slip editing sessions: a resolved
// layout plus a mutable value map per customer, persisted through a
// debounced autosaver so every keystroke eventually lands in the store
// without a save button.
package slip

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Status is the autosaver's externally visible state.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
	StatusError  Status = "error"
)

// DebounceInterval is how long after the last mutation a save fires.
const DebounceInterval = 1000 * time.Millisecond

// SettleInterval is how long the saved indicator shows before returning
// to idle.
const SettleInterval = 2000 * time.Millisecond

// SaveFunc persists one snapshot of a slip's values.
type SaveFunc func(ctx context.Context, fields map[string]string, options map[string]bool) error

// Autosaver coalesces value mutations into debounced saves. At most one
// save is in flight at a time; a failed save keeps the dirty snapshot and
// waits for the next mutation rather than retrying on a timer.
type Autosaver struct {
	save     SaveFunc
	debounce time.Duration
	settle   time.Duration

	mu             sync.Mutex
	status         Status
	lastSaved      string // serialized form of the last successful save
	pending        string
	pendingFields  map[string]string
	pendingOptions map[string]bool
	timer          *time.Timer
	settleTimer    *time.Timer
	inFlight       bool
	inFlightDone   chan struct{}
	queued         bool
	lastErr        error
	closed         bool
	watchers       []chan Status
}

// NewAutosaver creates an autosaver with the production intervals.
func NewAutosaver(save SaveFunc) *Autosaver {
	return NewAutosaverWithIntervals(save, DebounceInterval, SettleInterval)
}

// NewAutosaverWithIntervals creates an autosaver with explicit debounce
// and settle intervals. Tests use short intervals.
func NewAutosaverWithIntervals(save SaveFunc, debounce, settle time.Duration) *Autosaver {
	return &Autosaver{
		save:     save,
		debounce: debounce,
		settle:   settle,
		status:   StatusIdle,
	}
}

type snapshot struct {
	Fields  map[string]string `json:"fields"`
	Options map[string]bool   `json:"options"`
}

// encodeSnapshot serializes a value state deterministically (map keys
// marshal sorted), so unchanged state compares equal as a string.
func encodeSnapshot(fields map[string]string, options map[string]bool) string {
	data, err := json.Marshal(snapshot{Fields: fields, Options: options})
	if err != nil {
		// Maps of strings and bools cannot fail to marshal.
		return fmt.Sprintf("%v|%v", fields, options)
	}
	return string(data)
}

// Notify records a new value state and (re)arms the debounce timer. A
// state identical to the last successful save cancels any pending work
// instead of scheduling a redundant save.
func (a *Autosaver) Notify(fields map[string]string, options map[string]bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	snap := encodeSnapshot(fields, options)
	if snap == a.lastSaved {
		a.pending = ""
		a.pendingFields, a.pendingOptions = nil, nil
		if a.timer != nil {
			a.timer.Stop()
			a.timer = nil
		}
		return
	}

	a.pending = snap
	a.pendingFields = cloneStringMap(fields)
	a.pendingOptions = cloneBoolMap(options)
	a.lastErr = nil

	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, a.flush)
}

// flush runs when the debounce timer fires. If a save is already in
// flight the snapshot waits for it to finish.
func (a *Autosaver) flush() {
	a.mu.Lock()
	if a.closed || a.pending == "" || a.pending == a.lastSaved {
		a.mu.Unlock()
		return
	}
	if a.inFlight {
		a.queued = true
		a.mu.Unlock()
		return
	}

	snap := a.pending
	fields, options := a.pendingFields, a.pendingOptions
	a.inFlight = true
	a.inFlightDone = make(chan struct{})
	a.setStatusLocked(StatusSaving)
	a.mu.Unlock()

	err := a.save(context.Background(), fields, options)

	a.mu.Lock()
	a.inFlight = false
	close(a.inFlightDone)

	if err != nil {
		a.lastErr = err
		a.setStatusLocked(StatusError)
		a.mu.Unlock()
		return
	}

	a.lastSaved = snap
	a.setStatusLocked(StatusSaved)
	if a.settleTimer != nil {
		a.settleTimer.Stop()
	}
	a.settleTimer = time.AfterFunc(a.settle, a.settleToIdle)

	rerun := a.queued && a.pending != a.lastSaved
	a.queued = false
	a.mu.Unlock()

	if rerun {
		a.flush()
	}
}

func (a *Autosaver) settleToIdle() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status == StatusSaved {
		a.setStatusLocked(StatusIdle)
	}
}

// Status returns the current autosave state.
func (a *Autosaver) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Err returns the error from the last failed save, if the autosaver is
// in the error state.
func (a *Autosaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Dirty reports whether unsaved changes exist.
func (a *Autosaver) Dirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != "" && a.pending != a.lastSaved
}

// Watch returns a channel that receives status transitions. Slow readers
// miss updates rather than blocking the autosaver.
func (a *Autosaver) Watch() <-chan Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	ch := make(chan Status, 8)
	a.watchers = append(a.watchers, ch)
	return ch
}

// Unwatch removes and closes a channel returned by Watch.
func (a *Autosaver) Unwatch(ch <-chan Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, w := range a.watchers {
		if w == ch {
			a.watchers = append(a.watchers[:i], a.watchers[i+1:]...)
			close(w)
			return
		}
	}
}

func (a *Autosaver) setStatusLocked(s Status) {
	if a.status == s {
		return
	}
	a.status = s
	for _, w := range a.watchers {
		select {
		case w <- s:
		default:
		}
	}
}

// Close stops the timers, waits out any in-flight save, and flushes a
// still-dirty snapshot synchronously so closing the form never loses the
// last keystrokes. Safe to call more than once.
func (a *Autosaver) Close(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.settleTimer != nil {
		a.settleTimer.Stop()
		a.settleTimer = nil
	}

	for a.inFlight {
		done := a.inFlightDone
		a.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			a.mu.Lock()
			a.markClosedLocked()
			a.mu.Unlock()
			return ctx.Err()
		}
		a.mu.Lock()
	}

	var err error
	if a.pending != "" && a.pending != a.lastSaved {
		snap := a.pending
		fields, options := a.pendingFields, a.pendingOptions
		a.mu.Unlock()
		err = a.save(ctx, fields, options)
		a.mu.Lock()
		if err == nil {
			a.lastSaved = snap
		}
	}

	a.markClosedLocked()
	a.mu.Unlock()
	if err != nil {
		return fmt.Errorf("flushing autosave on close: %w", err)
	}
	return nil
}

func (a *Autosaver) markClosedLocked() {
	a.closed = true
	for _, w := range a.watchers {
		close(w)
	}
	a.watchers = nil
}

func cloneStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
