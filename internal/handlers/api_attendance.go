package handlers

import (
	"net/http"
	"time"
)

// parseDateParam reads a YYYY-MM-DD query parameter.
func parseDateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		http.Error(w, "Missing required parameter: "+name, http.StatusBadRequest)
		return time.Time{}, false
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		http.Error(w, "Invalid date (want YYYY-MM-DD): "+raw, http.StatusBadRequest)
		return time.Time{}, false
	}
	return day, true
}

func (h *APIHandler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDateParam(w, r, "date")
	if !ok {
		return
	}

	processed, err := h.attendance.CalculateForDate(day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":      day.Format("2006-01-02"),
		"processed": processed,
	})
}

func (h *APIHandler) handleAttendanceRecords(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDateParam(w, r, "date")
	if !ok {
		return
	}

	records, err := h.attendance.RecordsForDate(day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *APIHandler) handleAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		http.Error(w, "Missing required parameter: month", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		http.Error(w, "Invalid month (want YYYY-MM): "+month, http.StatusBadRequest)
		return
	}

	summaries, err := h.reports.AttendanceSummary(month)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *APIHandler) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDateParam(w, r, "date")
	if !ok {
		return
	}

	summary, err := h.reports.SummaryForDate(day.Format("2006-01-02"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
