package handlers

import (
	"net/http"

	"github.com/gasesray/shottrack/services"
)

type PlayByPlayHandler struct {
	playByPlayService services.PlayByPlayService
}

func NewPlayByPlayHandler(ps services.PlayByPlayService) *PlayByPlayHandler {
	return &PlayByPlayHandler{playByPlayService: ps}
}

// GetPlayByPlay отдаёт отформатированную ленту матча.
func (h *PlayByPlayHandler) GetPlayByPlay(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getIDFromURL(r, "scheduleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.playByPlayService.GetPlayByPlay(r.Context(), scheduleID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"play_by_play": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTeamFouls отдаёт командные фолы матча за четверть.
func (h *PlayByPlayHandler) GetTeamFouls(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getIDFromURL(r, "scheduleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	quarter, err := getIDFromURL(r, "quarter")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.playByPlayService.GetTeamFouls(r.Context(), scheduleID, quarter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// Ответ — плоский объект с фиксированными слотами, без конверта.
	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordEvent сохраняет одно игровое событие (live-ввод статистики).
func (h *PlayByPlayHandler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getIDFromURL(r, "scheduleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RecordEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.playByPlayService.RecordEvent(r.Context(), scheduleID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
