package handler

import (
	"encoding/json"
	"net/http"

	"chayen/internal/models"
	"chayen/internal/service"
)

type VoucherHandler struct {
	voucherService service.VoucherService
}

func NewVoucherHandler(voucherService service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

func (h *VoucherHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req models.IssueVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	voucher, err := h.voucherService.Issue(r.Context(), r.PathValue("id"), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, voucher)
}

func (h *VoucherHandler) ListForMember(w http.ResponseWriter, r *http.Request) {
	vouchers, err := h.voucherService.ListForMember(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, vouchers)
}

func (h *VoucherHandler) Validate(w http.ResponseWriter, r *http.Request) {
	voucher, err := h.voucherService.Validate(r.Context(), r.PathValue("code"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, voucher)
}

func (h *VoucherHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	voucher, err := h.voucherService.Redeem(r.Context(), r.PathValue("code"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, voucher)
}
