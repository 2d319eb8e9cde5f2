// Package event owns the user-event collection: creation, partial edits,
// idempotent deletion, per-date listing, and the automatic expiry sweep.
// The in-memory collection is authoritative; every mutation is handed to a
// background writer that rewrites the persistence file.
package event

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shamsitray/shamsitray/internal/jalali"
	"github.com/shamsitray/shamsitray/internal/model"
)

// ErrNotFound is returned for operations on an unknown event ID.
var ErrNotFound = errors.New("event not found")

// ValidationError reports malformed event input, such as an empty title or
// an out-of-range date.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return "invalid event: " + e.Reason
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Engine manages the active event set. All methods are safe for concurrent
// use; persistence happens off the calling goroutine through a single
// serialized writer.
type Engine struct {
	mu     sync.Mutex
	events map[int64]model.UserEvent
	order  []int64
	nextID int64

	store  *FileStore
	writer *asyncWriter
	now    func() time.Time
	logger *slog.Logger
}

// NewEngine loads the persisted collection and starts the background writer.
// A missing file starts empty; a corrupt file is a logged warning and the
// engine starts empty rather than refusing to run.
func NewEngine(store *FileStore, logger *slog.Logger) *Engine {
	snap, err := store.Load()
	if err != nil {
		logger.Warn("load events", "error", err)
	}

	e := &Engine{
		events: make(map[int64]model.UserEvent, len(snap.Events)),
		order:  make([]int64, 0, len(snap.Events)),
		nextID: snap.NextID,
		store:  store,
		now:    time.Now,
		logger: logger,
	}
	for _, ev := range snap.Events {
		if _, dup := e.events[ev.ID]; dup {
			logger.Warn("skip duplicate event id in file", "id", ev.ID)
			continue
		}
		e.events[ev.ID] = ev
		e.order = append(e.order, ev.ID)
	}
	e.writer = newAsyncWriter(store, logger)
	return e
}

// Close flushes pending writes and stops the background writer.
func (e *Engine) Close() {
	e.writer.close()
}

// Flush blocks until every queued write has hit the disk. Intended for
// shutdown and tests.
func (e *Engine) Flush() {
	e.writer.flush()
}

// Create adds a new event with a fresh ID.
func (e *Engine) Create(title string, date jalali.Date, recurringYearly bool) (model.UserEvent, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.UserEvent{}, &ValidationError{Reason: "title is empty"}
	}
	if err := date.Validate(); err != nil {
		return model.UserEvent{}, &ValidationError{Reason: err.Error(), Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now().UTC()
	ev := model.UserEvent{
		ID:              e.nextID,
		Title:           title,
		Date:            date,
		RecurringYearly: recurringYearly,
		CreatedAt:       now,
		ModifiedAt:      now,
	}
	e.nextID++
	e.events[ev.ID] = ev
	e.order = append(e.order, ev.ID)
	e.persistLocked()
	return ev, nil
}

// Edit applies a partial update. Nil fields keep their current value.
func (e *Engine) Edit(id int64, newTitle *string, newDate *jalali.Date, newRecurring *bool) (model.UserEvent, error) {
	if newTitle != nil {
		trimmed := strings.TrimSpace(*newTitle)
		if trimmed == "" {
			return model.UserEvent{}, &ValidationError{Reason: "title is empty"}
		}
		newTitle = &trimmed
	}
	if newDate != nil {
		if err := newDate.Validate(); err != nil {
			return model.UserEvent{}, &ValidationError{Reason: err.Error(), Err: err}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ev, ok := e.events[id]
	if !ok {
		return model.UserEvent{}, fmt.Errorf("edit event %d: %w", id, ErrNotFound)
	}
	if newTitle != nil {
		ev.Title = *newTitle
	}
	if newDate != nil {
		ev.Date = *newDate
	}
	if newRecurring != nil {
		ev.RecurringYearly = *newRecurring
	}
	ev.ModifiedAt = e.now().UTC()
	e.events[id] = ev
	e.persistLocked()
	return ev, nil
}

// Delete removes an event. Deleting an absent ID is a no-op.
func (e *Engine) Delete(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.events[id]; !ok {
		return
	}
	delete(e.events, id)
	e.removeFromOrder(id)
	e.persistLocked()
}

// Get returns the event with the given ID.
func (e *Engine) Get(id int64) (model.UserEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, ok := e.events[id]
	if !ok {
		return model.UserEvent{}, fmt.Errorf("get event %d: %w", id, ErrNotFound)
	}
	return ev, nil
}

// List returns every active event in creation order.
func (e *Engine) List() []model.UserEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.listLocked()
}

// ListForDate returns the events occurring on the given date, in creation
// order: recurring events match on month/day, one-off events also on year.
func (e *Engine) ListForDate(d jalali.Date) []model.UserEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []model.UserEvent
	for _, id := range e.order {
		if ev := e.events[id]; ev.OccursOn(d) {
			out = append(out, ev)
		}
	}
	return out
}

// SweepExpired removes every non-recurring event dated strictly before
// today and returns how many were removed. Recurring events are exempt no
// matter how far in the past their date lies.
func (e *Engine) SweepExpired(today jalali.Date) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	var expired []int64
	for _, id := range e.order {
		ev := e.events[id]
		if !ev.RecurringYearly && ev.Date.Before(today) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(e.events, id)
		e.removeFromOrder(id)
	}
	if len(expired) > 0 {
		e.logger.Info("swept expired events", "count", len(expired))
		e.persistLocked()
	}
	return len(expired)
}

func (e *Engine) listLocked() []model.UserEvent {
	out := make([]model.UserEvent, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.events[id])
	}
	return out
}

func (e *Engine) removeFromOrder(id int64) {
	for i, oid := range e.order {
		if oid == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			return
		}
	}
}

// persistLocked queues the current collection for the background writer.
// Caller holds e.mu.
func (e *Engine) persistLocked() {
	e.writer.enqueue(snapshot{NextID: e.nextID, Events: e.listLocked()})
}

// asyncWriter serializes snapshot writes on a single goroutine. Only the
// most recent snapshot is kept while a write is in flight, so a slow disk
// never backs up the callers and writes never interleave.
type asyncWriter struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending *snapshot
	writing bool
	closed  bool
	done    chan struct{}

	store  *FileStore
	logger *slog.Logger
}

func newAsyncWriter(store *FileStore, logger *slog.Logger) *asyncWriter {
	w := &asyncWriter{
		store:  store,
		logger: logger,
		done:   make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

func (w *asyncWriter) enqueue(snap snapshot) {
	w.mu.Lock()
	if !w.closed {
		w.pending = &snap
		w.cond.Broadcast()
	}
	w.mu.Unlock()
}

func (w *asyncWriter) run() {
	defer close(w.done)
	for {
		w.mu.Lock()
		for w.pending == nil && !w.closed {
			w.cond.Wait()
		}
		if w.pending == nil && w.closed {
			w.mu.Unlock()
			return
		}
		snap := *w.pending
		w.pending = nil
		w.writing = true
		w.mu.Unlock()

		if err := w.store.Save(snap); err != nil {
			// Non-fatal: in-memory state stays authoritative for the session.
			w.logger.Warn("persist events", "error", err)
		}

		w.mu.Lock()
		w.writing = false
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}

func (w *asyncWriter) flush() {
	w.mu.Lock()
	for w.pending != nil || w.writing {
		w.cond.Wait()
	}
	w.mu.Unlock()
}

func (w *asyncWriter) close() {
	w.mu.Lock()
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()
	<-w.done
}
