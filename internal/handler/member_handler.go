package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"chayen/internal/models"
	"chayen/internal/service"
)

type MemberHandler struct {
	memberService service.MemberService
}

func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

func (h *MemberHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	member, err := h.memberService.Register(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.memberService.GetMember(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) LookupByPhone(w http.ResponseWriter, r *http.Request) {
	member, err := h.memberService.LookupByPhone(r.Context(), r.URL.Query().Get("phone"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, member)
}

// GetBenefits returns the member's tier, discount percentage, points balance
// and the maximum redeemable points for the subtotal passed as ?subtotal=.
func (h *MemberHandler) GetBenefits(w http.ResponseWriter, r *http.Request) {
	var subtotal int64
	if subtotalStr := r.URL.Query().Get("subtotal"); subtotalStr != "" {
		parsed, err := strconv.ParseInt(subtotalStr, 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid subtotal")
			return
		}
		subtotal = parsed
	}

	benefits, err := h.memberService.GetBenefits(r.Context(), r.PathValue("id"), subtotal)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, benefits)
}
