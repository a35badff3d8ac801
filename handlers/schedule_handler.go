package handlers

import (
	"errors"
	"net/http"

	"github.com/gasesray/shottrack/services"
)

const maxImportUploadBytes = 10 << 20 // 10MB

type ScheduleHandler struct {
	scheduleService services.ScheduleService
	importService   services.ScheduleImportService
}

func NewScheduleHandler(ss services.ScheduleService, is services.ScheduleImportService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: ss,
		importService:   is,
	}
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateScheduleInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.Create(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"schedule": schedule}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getIDFromURL(r, "scheduleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedule, err := h.scheduleService.GetByID(r.Context(), scheduleID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"schedule": schedule}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	schedules, err := h.scheduleService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"schedules": schedules}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) ListStats(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getIDFromURL(r, "scheduleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.scheduleService.ListStats(r.Context(), scheduleID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player_stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := getIDFromURL(r, "scheduleID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scheduleService.Delete(r.Context(), scheduleID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Import принимает multipart-форму с файлом расписания (.xlsx или .csv)
// в поле "file". Ошибки отдельных строк не прерывают импорт остальных.
func (h *ScheduleHandler) Import(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxImportUploadBytes); err != nil {
		badRequestResponse(w, r, errors.New("failed to parse multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequestResponse(w, r, errors.New("schedule file is required"))
		return
	}
	defer file.Close()

	result, err := h.importService.ImportFile(r.Context(), tournamentID, header.Filename, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Created > 0 && len(result.RowErrors) == 0 {
		status = http.StatusCreated
	}

	if err := writeJSON(w, status, jsonResponse{"import": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
