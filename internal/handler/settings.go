package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shamsitray/shamsitray/internal/store"
	"github.com/shamsitray/shamsitray/internal/websocket"
)

type SettingsHandler struct {
	settingsStore *store.SettingsStore
	hub           *websocket.Hub
	logger        *slog.Logger
}

func NewSettingsHandler(ss *store.SettingsStore, hub *websocket.Hub, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settingsStore: ss, hub: hub, logger: logger}
}

func (h *SettingsHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type settingsResponse struct {
	AutorunEnabled bool   `json:"autorun_enabled"`
	Theme          string `json:"theme_choice"`
	TutorialShown  bool   `json:"tutorial_shown"`
}

// settingsRequest carries a partial update. Absent fields keep their
// stored value.
type settingsRequest struct {
	AutorunEnabled *bool   `json:"autorun_enabled"`
	Theme          *string `json:"theme_choice"`
	TutorialShown  *bool   `json:"tutorial_shown"`
}

func (h *SettingsHandler) currentSettings() (settingsResponse, error) {
	var resp settingsResponse
	var err error
	if resp.AutorunEnabled, err = h.settingsStore.AutorunEnabled(); err != nil {
		return resp, err
	}
	if resp.Theme, err = h.settingsStore.ThemeChoice(); err != nil {
		return resp, err
	}
	resp.TutorialShown, err = h.settingsStore.TutorialShown()
	return resp, err
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.currentSettings()
	if err != nil {
		h.logger.Error("get settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.AutorunEnabled == nil && req.Theme == nil && req.TutorialShown == nil {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if req.Theme != nil {
		if err := h.settingsStore.SetThemeChoice(*req.Theme); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.AutorunEnabled != nil {
		if err := h.settingsStore.SetAutorunEnabled(*req.AutorunEnabled); err != nil {
			h.logger.Error("save setting", "key", store.KeyAutorunEnabled, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
	}
	if req.TutorialShown != nil {
		if err := h.settingsStore.SetTutorialShown(*req.TutorialShown); err != nil {
			h.logger.Error("save setting", "key", store.KeyTutorialShown, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
	}

	h.broadcast(websocket.SettingsChanged())

	settings, err := h.currentSettings()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
