package handlers

import (
	"net/http"

	"github.com/shiftledger/shiftledger/internal/services"
)

func (h *APIHandler) handlePendingSwaps(w http.ResponseWriter, r *http.Request) {
	pending, err := h.swaps.ListPending()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (h *APIHandler) handleCreateSwap(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSwapInput
	if !decodeBody(w, r, &input) {
		return
	}

	req, err := h.swaps.CreateRequest(input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

type reviewRequest struct {
	Reviewer string `json:"reviewer"`
	Notes    string `json:"notes"`
}

func (h *APIHandler) handleApproveSwap(w http.ResponseWriter, r *http.Request) {
	requestUUID := r.PathValue("uuid")

	var review reviewRequest
	if !decodeBody(w, r, &review) {
		return
	}
	if review.Reviewer == "" {
		http.Error(w, "reviewer is required", http.StatusBadRequest)
		return
	}

	if err := h.swaps.Approve(requestUUID, review.Reviewer); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "Approved"})
}

func (h *APIHandler) handleRejectSwap(w http.ResponseWriter, r *http.Request) {
	requestUUID := r.PathValue("uuid")

	var review reviewRequest
	if !decodeBody(w, r, &review) {
		return
	}
	if review.Reviewer == "" {
		http.Error(w, "reviewer is required", http.StatusBadRequest)
		return
	}

	if err := h.swaps.Reject(requestUUID, review.Reviewer, review.Notes); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "Rejected"})
}
