package services

import (
	"fmt"
	"math"

	"github.com/shiftledger/shiftledger/internal/database"
	"gorm.io/gorm"
)

// ReportService builds read-only projections over the processed attendance
// records. It never writes.
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// AgentSummary aggregates one agent's attendance over a month.
type AgentSummary struct {
	AgentUID          string  `json:"agent_uid"`
	AgentName         string  `json:"agent_name"`
	TeamLeader        string  `json:"team_leader"`
	Supervisor        string  `json:"supervisor"`
	DaysWorked        int     `json:"days_worked"`
	TotalStaffMinutes float64 `json:"total_staff_minutes"`
	PresentDays       int     `json:"present_days"`
	AbsentDays        int     `json:"absent_days"`
	LeaveDays         int     `json:"leave_days"`
	OffDays           int     `json:"off_days"`
	AttendancePct     float64 `json:"attendance_pct"`
}

// AttendanceSummary aggregates the processed records of one month per
// agent: counts of present/absent/leave days, total staffed minutes, and an
// attendance percentage (0 when no classified days exist).
func (s *ReportService) AttendanceSummary(yearMonth string) ([]AgentSummary, error) {
	var summaries []AgentSummary
	err := s.db.Raw(`
		SELECT
			ar.agent_uid AS agent_uid,
			a.name AS agent_name,
			a.team_leader AS team_leader,
			a.supervisor AS supervisor,
			SUM(CASE WHEN ar.staff_seconds > 0 THEN 1 ELSE 0 END) AS days_worked,
			SUM(ar.staff_minutes) AS total_staff_minutes,
			SUM(CASE WHEN ar.status IN (?, ?, ?) THEN 1 ELSE 0 END) AS present_days,
			SUM(CASE WHEN ar.status = ? THEN 1 ELSE 0 END) AS absent_days,
			SUM(CASE WHEN ar.status = ? THEN 1 ELSE 0 END) AS leave_days,
			SUM(CASE WHEN ar.status = ? THEN 1 ELSE 0 END) AS off_days
		FROM attendance_records ar
		JOIN agents a ON a.uid = ar.agent_uid
		WHERE ar.year_month = ?
		GROUP BY ar.agent_uid, a.name, a.team_leader, a.supervisor
		ORDER BY a.name ASC`,
		database.StatusFullShift, database.StatusOvertime, database.StatusPartial,
		database.StatusAbsent,
		database.StatusHalfDay,
		database.StatusScheduledOff,
		yearMonth,
	).Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance summary for %s: %w", yearMonth, err)
	}

	for i := range summaries {
		total := summaries[i].PresentDays + summaries[i].AbsentDays + summaries[i].LeaveDays
		if total > 0 {
			pct := float64(summaries[i].PresentDays) / float64(total) * 100.0
			summaries[i].AttendancePct = math.Round(pct*10) / 10
		}
	}
	return summaries, nil
}

// DateSummary aggregates one processed date across all agents.
type DateSummary struct {
	ShiftDate         string  `json:"shift_date"`
	Agents            int     `json:"agents"`
	PresentDays       int     `json:"present_days"`
	AbsentDays        int     `json:"absent_days"`
	LeaveDays         int     `json:"leave_days"`
	OffDays           int     `json:"off_days"`
	UnknownDays       int     `json:"unknown_days"`
	TotalStaffMinutes float64 `json:"total_staff_minutes"`
}

// SummaryForDate aggregates the processed records of one date.
func (s *ReportService) SummaryForDate(date string) (*DateSummary, error) {
	var summary DateSummary
	err := s.db.Raw(`
		SELECT
			COUNT(*) AS agents,
			SUM(CASE WHEN status IN (?, ?, ?) THEN 1 ELSE 0 END) AS present_days,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS absent_days,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS leave_days,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS off_days,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS unknown_days,
			SUM(staff_minutes) AS total_staff_minutes
		FROM attendance_records
		WHERE shift_date = ?`,
		database.StatusFullShift, database.StatusOvertime, database.StatusPartial,
		database.StatusAbsent,
		database.StatusHalfDay,
		database.StatusScheduledOff,
		database.StatusUnknown,
		date,
	).Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build date summary for %s: %w", date, err)
	}
	summary.ShiftDate = date
	return &summary, nil
}
