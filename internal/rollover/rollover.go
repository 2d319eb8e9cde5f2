// Package rollover watches for the Jalali day changing. On every change it
// sweeps expired events and tells connected shells to re-render; the sweep
// also runs once at startup to catch days that passed while the service
// was down.
package rollover

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/shamsitray/shamsitray/internal/clock"
	"github.com/shamsitray/shamsitray/internal/event"
	"github.com/shamsitray/shamsitray/internal/jalali"
	"github.com/shamsitray/shamsitray/internal/websocket"
)

// Broadcaster delivers re-render signals to connected shells.
type Broadcaster interface {
	Broadcast(msg websocket.Message)
}

// Watcher polls the clock once a minute. A minute is coarse enough to be
// free and fine enough that the tray never shows yesterday for long.
type Watcher struct {
	cron   *cron.Cron
	clock  clock.Clock
	engine *event.Engine
	hub    Broadcaster
	logger *slog.Logger

	mu      sync.Mutex
	current jalali.Date
}

func New(clk clock.Clock, engine *event.Engine, hub Broadcaster, logger *slog.Logger) *Watcher {
	return &Watcher{
		cron:   cron.New(),
		clock:  clk,
		engine: engine,
		hub:    hub,
		logger: logger,
	}
}

// Today returns the current Jalali date according to the watcher's clock.
func (w *Watcher) Today() (jalali.Date, error) {
	return jalali.FromTime(w.clock.Now())
}

// Start runs the startup sweep and schedules the minute check. The startup
// sweep happens before the first tick so stale events never reach a shell.
func (w *Watcher) Start() error {
	today, err := w.Today()
	if err != nil {
		return fmt.Errorf("resolve today: %w", err)
	}

	w.mu.Lock()
	w.current = today
	w.mu.Unlock()

	if n := w.engine.SweepExpired(today); n > 0 {
		w.hub.Broadcast(websocket.EventsChanged(0))
	}

	if _, err := w.cron.AddFunc("* * * * *", w.tick); err != nil {
		return fmt.Errorf("add rollover check: %w", err)
	}
	w.cron.Start()
	w.logger.Info("rollover watcher started", "today", today.String())
	return nil
}

// Stop halts the schedule and waits for a running tick to finish.
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
}

func (w *Watcher) tick() {
	today, err := w.Today()
	if err != nil {
		w.logger.Error("resolve today", "error", err)
		return
	}

	w.mu.Lock()
	changed := today != w.current
	if changed {
		w.current = today
	}
	w.mu.Unlock()

	if !changed {
		return
	}

	w.logger.Info("day rollover", "today", today.String())
	if n := w.engine.SweepExpired(today); n > 0 {
		w.hub.Broadcast(websocket.EventsChanged(0))
	}
	w.hub.Broadcast(websocket.DayRollover(today))
}
