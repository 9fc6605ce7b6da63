package handlers

import (
	"net/http"

	"github.com/shiftledger/shiftledger/internal/services"
)

func (h *APIHandler) handleIngestAgents(w http.ResponseWriter, r *http.Request) {
	var rows []services.AgentUpload
	if !decodeBody(w, r, &rows) {
		return
	}

	result, err := h.agents.UpsertAgents(rows)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type rosterIngestRequest struct {
	SourceFile string                  `json:"source_file"`
	Rows       []services.RosterUpload `json:"rows"`
}

func (h *APIHandler) handleIngestRoster(w http.ResponseWriter, r *http.Request) {
	var req rosterIngestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.roster.IngestRoster(req.Rows, req.SourceFile)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *APIHandler) handleIngestProductivity(w http.ResponseWriter, r *http.Request) {
	var rows []services.ProductivityUpload
	if !decodeBody(w, r, &rows) {
		return
	}

	result, err := h.signals.IngestProductivity(rows)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *APIHandler) handleIngestSessions(w http.ResponseWriter, r *http.Request) {
	feed := r.PathValue("feed")

	var rows []services.SessionUpload
	if !decodeBody(w, r, &rows) {
		return
	}

	result, err := h.signals.IngestSessions(feed, rows)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
