package handlers

import "net/http"

func (h *APIHandler) handleListDictionary(w http.ResponseWriter, r *http.Request) {
	patterns, err := h.normalizer.ListPatterns()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patterns)
}

type registerPatternRequest struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	ShiftType  string `json:"shift_type"`
	CreatedBy  string `json:"created_by"`
}

func (h *APIHandler) handleRegisterPattern(w http.ResponseWriter, r *http.Request) {
	var req registerPatternRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.normalizer.RegisterPattern(req.Raw, req.Normalized, req.ShiftType, req.CreatedBy); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"raw": req.Raw, "normalized": req.Normalized})
}
