package handler

import (
	"net/http"

	"gayish/internal/service"
	"gayish/internal/transport/rest/middleware"
)

// StatsHandler handles statistics and achievement endpoints
type StatsHandler struct {
	statsSvc *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsSvc *service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// GetStats handles GET /v1/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	deviceID := middleware.GetDeviceID(r.Context())
	if deviceID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp, err := h.statsSvc.GetStats(r.Context(), deviceID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// RecordShare handles POST /v1/share
func (h *StatsHandler) RecordShare(w http.ResponseWriter, r *http.Request) {
	deviceID := middleware.GetDeviceID(r.Context())
	if deviceID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	unlocked, err := h.statsSvc.RecordShare(r.Context(), deviceID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"newAchievements": unlocked,
	})
}

// GetScoreboard handles GET /v1/scoreboard
func (h *StatsHandler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.statsSvc.GetScoreboard(r.Context(), 10)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
