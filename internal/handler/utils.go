package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"chayen/internal/models"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondWithServiceError maps the error taxonomy onto HTTP status codes:
// not-found 404, conflict 409, precondition or validation failures 400, and
// anything else 500.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrMemberNotFound),
		errors.Is(err, models.ErrStaffNotFound),
		errors.Is(err, models.ErrShiftNotFound),
		errors.Is(err, models.ErrMenuNotFound),
		errors.Is(err, models.ErrToppingNotFound),
		errors.Is(err, models.ErrVoucherNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, models.ErrPhoneTaken),
		errors.Is(err, models.ErrShiftAlreadyOpen):
		respondWithError(w, http.StatusConflict, err.Error())

	case errors.Is(err, models.ErrEmptyOrder),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidPaymentMethod),
		errors.Is(err, models.ErrInvalidSweetness),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrOrderAlreadyCancelled),
		errors.Is(err, models.ErrTotalMismatch),
		errors.Is(err, models.ErrPointsMismatch),
		errors.Is(err, models.ErrInvalidRedemption),
		errors.Is(err, models.ErrInsufficientCash),
		errors.Is(err, models.ErrMenuUnavailable),
		errors.Is(err, models.ErrToppingUnavailable),
		errors.Is(err, models.ErrShiftAlreadyClosed),
		errors.Is(err, models.ErrNegativeCash),
		errors.Is(err, models.ErrReconciliationNote),
		errors.Is(err, models.ErrInvalidPhone),
		errors.Is(err, models.ErrInvalidName),
		errors.Is(err, models.ErrInvalidDateRange),
		errors.Is(err, models.ErrInvalidSubtotal),
		errors.Is(err, models.ErrVoucherExpired),
		errors.Is(err, models.ErrVoucherUsed):
		respondWithError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, models.ErrInvalidPIN),
		errors.Is(err, models.ErrSessionNotFound):
		respondWithError(w, http.StatusUnauthorized, err.Error())

	default:
		respondWithError(w, http.StatusInternalServerError, "operation failed")
	}
}

// parseDateRange reads startDate/endDate query parameters (YYYY-MM-DD) and
// widens the end date to cover the whole day.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	startStr := r.URL.Query().Get("startDate")
	endStr := r.URL.Query().Get("endDate")

	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, models.ErrInvalidDateRange
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, models.ErrInvalidDateRange
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, models.ErrInvalidDateRange
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, models.ErrInvalidDateRange
	}

	return start, end.AddDate(0, 0, 1), nil
}
