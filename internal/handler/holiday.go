package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shamsitray/shamsitray/internal/holiday"
	"github.com/shamsitray/shamsitray/internal/model"
	"github.com/shamsitray/shamsitray/internal/websocket"
)

type HolidayHandler struct {
	set    *holiday.Set
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewHolidayHandler(set *holiday.Set, hub *websocket.Hub, logger *slog.Logger) *HolidayHandler {
	return &HolidayHandler{set: set, hub: hub, logger: logger}
}

func (h *HolidayHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

// Resolve handles GET /api/holidays?year=&month= and, with day set,
// GET /api/holidays?year=&month=&day=. The month form maps day numbers to
// their records; the day form lists the records for that single date.
func (h *HolidayHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be a number")
		return
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be a number")
		return
	}

	if dayStr := q.Get("day"); dayStr != "" {
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "day must be a number")
			return
		}
		records := h.set.Resolve(year, month, day)
		writeJSON(w, http.StatusOK, map[string]any{
			"is_holiday": len(records) > 0,
			"holidays":   records,
		})
		return
	}

	writeJSON(w, http.StatusOK, h.set.ResolveMonth(year, month))
}

type overrideRequest struct {
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	Year        int    `json:"year"`
	Description string `json:"description"`
}

// AddOverride handles POST /api/holidays. The record lands in the user
// layer and shadows any builtin entry in the same slot.
func (h *HolidayHandler) AddOverride(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	rec := model.HolidayRecord{
		Month:       req.Month,
		Day:         req.Day,
		Year:        req.Year,
		Description: req.Description,
		Source:      model.SourceUser,
	}
	if err := h.set.AddOverride(rec); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.broadcast(websocket.HolidaysChanged())
	writeJSON(w, http.StatusCreated, rec)
}

// RemoveOverride handles DELETE /api/holidays?month=&day=&year=. Removing
// an override that shadowed a builtin entry un-shadows it.
func (h *HolidayHandler) RemoveOverride(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be a number")
		return
	}
	day, err := strconv.Atoi(q.Get("day"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "day must be a number")
		return
	}
	year := 0
	if yearStr := q.Get("year"); yearStr != "" {
		if year, err = strconv.Atoi(yearStr); err != nil {
			writeError(w, http.StatusBadRequest, "year must be a number")
			return
		}
	}

	removed, err := h.set.RemoveOverride(month, day, year)
	if err != nil {
		h.logger.Error("remove holiday override", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove override")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "override not found")
		return
	}

	h.broadcast(websocket.HolidaysChanged())
	w.WriteHeader(http.StatusNoContent)
}

// Reload handles POST /api/holidays/reload, re-reading the user override
// file from disk.
func (h *HolidayHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.set.Reload()
	h.broadcast(websocket.HolidaysChanged())
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}
