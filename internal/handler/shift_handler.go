package handler

import (
	"encoding/json"
	"net/http"

	"chayen/internal/models"
	"chayen/internal/service"
)

type ShiftHandler struct {
	shiftService service.ShiftService
}

func NewShiftHandler(shiftService service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

func (h *ShiftHandler) OpenShift(w http.ResponseWriter, r *http.Request) {
	var req models.OpenShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.StaffID == "" {
		respondWithError(w, http.StatusBadRequest, "staff_id is required")
		return
	}

	shift, err := h.shiftService.OpenShift(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, shift)
}

func (h *ShiftHandler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift, err := h.shiftService.GetShift(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, shift)
}

func (h *ShiftHandler) ListShifts(w http.ResponseWriter, r *http.Request) {
	filters := models.ShiftFilters{
		StaffID: r.URL.Query().Get("staff_id"),
		Status:  models.ShiftStatus(r.URL.Query().Get("status")),
	}

	shifts, err := h.shiftService.ListShifts(r.Context(), filters)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, shifts)
}

func (h *ShiftHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.shiftService.GetSummary(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

func (h *ShiftHandler) CloseShift(w http.ResponseWriter, r *http.Request) {
	var req models.CloseShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	shift, err := h.shiftService.CloseShift(r.Context(), r.PathValue("id"), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, shift)
}
