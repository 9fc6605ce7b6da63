package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/shiftledger/shiftledger/internal/services"
)

// APIHandler handles the JSON API consumed by the reporting and approval UIs
// and by the file-ingestion adapters.
type APIHandler struct {
	agents     *services.AgentService
	roster     *services.RosterService
	signals    *services.SignalService
	attendance *services.AttendanceService
	swaps      *services.SwapService
	reports    *services.ReportService
	normalizer *services.NormalizerService
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(
	agents *services.AgentService,
	roster *services.RosterService,
	signals *services.SignalService,
	attendance *services.AttendanceService,
	swaps *services.SwapService,
	reports *services.ReportService,
	normalizer *services.NormalizerService,
) *APIHandler {
	return &APIHandler{
		agents:     agents,
		roster:     roster,
		signals:    signals,
		attendance: attendance,
		swaps:      swaps,
		reports:    reports,
		normalizer: normalizer,
	}
}

// SetupRoutes sets up all API routes
func (h *APIHandler) SetupRoutes(mux *http.ServeMux) {
	// Ingestion (typed records from the file adapters)
	mux.HandleFunc("POST /api/ingest/agents", h.handleIngestAgents)
	mux.HandleFunc("POST /api/ingest/roster", h.handleIngestRoster)
	mux.HandleFunc("POST /api/ingest/productivity", h.handleIngestProductivity)
	mux.HandleFunc("POST /api/ingest/sessions/{feed}", h.handleIngestSessions)

	// Attendance reconciliation
	mux.HandleFunc("POST /api/attendance/calculate", h.handleCalculate)
	mux.HandleFunc("GET /api/attendance/records", h.handleAttendanceRecords)
	mux.HandleFunc("GET /api/attendance/summary", h.handleAttendanceSummary)
	mux.HandleFunc("GET /api/attendance/daily", h.handleDailySummary)

	// Swap workflow
	mux.HandleFunc("GET /api/swaps/pending", h.handlePendingSwaps)
	mux.HandleFunc("POST /api/swaps", h.handleCreateSwap)
	mux.HandleFunc("POST /api/swaps/{uuid}/approve", h.handleApproveSwap)
	mux.HandleFunc("POST /api/swaps/{uuid}/reject", h.handleRejectSwap)

	// Shift dictionary
	mux.HandleFunc("GET /api/dictionary", h.handleListDictionary)
	mux.HandleFunc("POST /api/dictionary", h.handleRegisterPattern)
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeServiceError maps service errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case services.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrAgentNotFound),
		errors.Is(err, services.ErrSwapNotFound),
		errors.Is(err, services.ErrNoShiftFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrAlreadyProcessed),
		errors.Is(err, services.ErrDuplicateMapping):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// decodeBody parses the JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
