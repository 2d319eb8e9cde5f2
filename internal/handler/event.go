package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shamsitray/shamsitray/internal/event"
	"github.com/shamsitray/shamsitray/internal/jalali"
	"github.com/shamsitray/shamsitray/internal/websocket"
)

type EventHandler struct {
	engine *event.Engine
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewEventHandler(engine *event.Engine, hub *websocket.Hub, logger *slog.Logger) *EventHandler {
	return &EventHandler{engine: engine, hub: hub, logger: logger}
}

func (h *EventHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type eventRequest struct {
	Title           *string      `json:"title"`
	Date            *jalali.Date `json:"date"`
	RecurringYearly *bool        `json:"recurring_yearly"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Title == nil || req.Date == nil {
		writeError(w, http.StatusBadRequest, "title and date are required")
		return
	}
	recurring := req.RecurringYearly != nil && *req.RecurringYearly

	ev, err := h.engine.Create(*req.Title, *req.Date, recurring)
	if err != nil {
		var verr *event.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Error("create event", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	h.broadcast(websocket.EventsChanged(ev.ID))
	writeJSON(w, http.StatusCreated, ev)
}

// List handles GET /api/events and GET /api/events?date=Y-M-D. Without a
// date it returns every stored event in creation order.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		writeJSON(w, http.StatusOK, h.engine.List())
		return
	}

	year, month, day, err := splitDate(dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be Y-M-D")
		return
	}
	d := jalali.Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.engine.ListForDate(d))
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	ev, err := h.engine.Get(id)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get event")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Title == nil && req.Date == nil && req.RecurringYearly == nil {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	ev, err := h.engine.Edit(id, req.Title, req.Date, req.RecurringYearly)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrNotFound):
			writeError(w, http.StatusNotFound, "event not found")
		default:
			var verr *event.ValidationError
			if errors.As(err, &verr) {
				writeError(w, http.StatusBadRequest, verr.Error())
				return
			}
			h.logger.Error("update event", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to update event")
		}
		return
	}

	h.broadcast(websocket.EventsChanged(ev.ID))
	writeJSON(w, http.StatusOK, ev)
}

// Delete removes an event. Deleting an unknown ID still answers 204: the
// end state is the same either way.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	h.engine.Delete(id)
	h.broadcast(websocket.EventsChanged(id))
	w.WriteHeader(http.StatusNoContent)
}
