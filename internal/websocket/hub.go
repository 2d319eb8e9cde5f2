// Package websocket pushes re-render signals to the tray shell. The shell
// holds no calendar state of its own: whenever the data changes or the day
// rolls over, it receives a signal and re-fetches what it displays.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/shamsitray/shamsitray/internal/jalali"
)

// Signal types understood by the shell.
const (
	TypeDayRollover     = "day_rollover"
	TypeEventsChanged   = "events_changed"
	TypeHolidaysChanged = "holidays_changed"
	TypeSettingsChanged = "settings_changed"
)

// Message is one re-render signal. Date is set for day rollovers, ID for
// single-event changes.
type Message struct {
	Type string       `json:"type"`
	ID   int64        `json:"id,omitempty"`
	Date *jalali.Date `json:"date,omitempty"`
}

// DayRollover signals that today's Jalali date changed.
func DayRollover(today jalali.Date) Message {
	return Message{Type: TypeDayRollover, Date: &today}
}

// EventsChanged signals a create, edit, delete or expiry sweep. id is zero
// when more than one event is affected.
func EventsChanged(id int64) Message {
	return Message{Type: TypeEventsChanged, ID: id}
}

// HolidaysChanged signals an override mutation or dataset reload.
func HolidaysChanged() Message {
	return Message{Type: TypeHolidaysChanged}
}

// SettingsChanged signals a settings write.
func SettingsChanged() Message {
	return Message{Type: TypeSettingsChanged}
}

// Hub maintains the set of connected shells and broadcasts signals.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends a signal to all connected clients.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client buffer full, drop the signal; the shell re-fetches
			// everything on the next one anyway.
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
