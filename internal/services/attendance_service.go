package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shiftledger/shiftledger/internal/database"
	"github.com/shiftledger/shiftledger/internal/utils"
	"gorm.io/gorm"
)

// Classification thresholds. Fixed against a nominal 9-hour shift with a
// 30-minute tolerance band; they do not vary by scheduled shift length.
const (
	nominalShiftHours  = 9.0
	shiftToleranceH    = 0.5
	fullShiftMinHours  = nominalShiftHours - shiftToleranceH // 8.5
	overtimeMinHours   = 10.0
	halfDayMinHours    = 4.0
	halfDayMaxHours    = 4.5
	evidenceConfidence = 100
)

// AttendanceService reconciles the live schedule against the resolved
// staffing evidence and writes the per-agent-per-day attendance verdicts.
type AttendanceService struct {
	db      *gorm.DB
	signals *SignalService
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(db *gorm.DB, signals *SignalService) *AttendanceService {
	return &AttendanceService{db: db, signals: signals}
}

// CalculateForDate classifies every agent with a live schedule entry on the
// date and replaces the processed records for that date. It is idempotent:
// the delete and insert run in one transaction, so a rerun fully supersedes
// the prior result and readers never observe a half-populated date. Returns
// the number of records written.
func (s *AttendanceService) CalculateForDate(day time.Time) (int, error) {
	started := time.Now()
	ym := monthKey(day)
	date := dateKey(day)

	var roster []database.RosterEntry
	if err := s.db.Where("year_month = ? AND shift_date = ?", ym, date).
		Order("agent_uid ASC").Find(&roster).Error; err != nil {
		return 0, fmt.Errorf("failed to read live schedule for %s: %w", date, err)
	}

	agents, err := s.loadAgents(roster)
	if err != nil {
		return 0, fmt.Errorf("failed to read agent master: %w", err)
	}

	evidence, err := s.signals.ResolveForDate(day)
	if err != nil {
		return 0, err
	}

	records := make([]database.AttendanceRecord, 0, len(roster))
	for _, entry := range roster {
		record := classify(entry, evidence[entry.AgentUID])
		record.YearMonth = ym
		record.ShiftDate = date
		if agent, ok := agents[entry.AgentUID]; ok {
			record.ACDID = agent.ACDID
			record.HCStatus = agent.Status
		}
		records = append(records, record)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("year_month = ? AND shift_date = ?", ym, date).
			Delete(&database.AttendanceRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear processed records for %s: %w", date, err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("failed to insert processed records for %s: %w", date, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("Reconciled %s: %d agents in %s", date, len(records), utils.FormatDuration(time.Since(started)))
	return len(records), nil
}

// RecordsForDate returns the processed records for a date.
func (s *AttendanceService) RecordsForDate(day time.Time) ([]database.AttendanceRecord, error) {
	var records []database.AttendanceRecord
	err := s.db.Where("year_month = ? AND shift_date = ?", monthKey(day), dateKey(day)).
		Order("agent_uid ASC").Find(&records).Error
	return records, err
}

func (s *AttendanceService) loadAgents(roster []database.RosterEntry) (map[string]database.Agent, error) {
	if len(roster) == 0 {
		return map[string]database.Agent{}, nil
	}
	uids := make([]string, 0, len(roster))
	for _, entry := range roster {
		uids = append(uids, entry.AgentUID)
	}

	var agents []database.Agent
	if err := s.db.Where("uid IN ?", uids).Find(&agents).Error; err != nil {
		return nil, err
	}
	byUID := make(map[string]database.Agent, len(agents))
	for _, a := range agents {
		byUID[a.UID] = a
	}
	return byUID, nil
}

// classify produces the attendance verdict for one scheduled agent-day.
// It never fails: shifts the normalizer could not interpret fall through to
// the Unknown status, which is a reportable result for a human to resolve.
func classify(entry database.RosterEntry, evidence StaffedEvidence) database.AttendanceRecord {
	record := database.AttendanceRecord{
		AgentUID:       entry.AgentUID,
		ScheduledShift: entry.NormalizedShift,
		StaffSeconds:   evidence.Seconds,
		StaffMinutes:   float64(evidence.Seconds) / 60.0,
		DataSource:     evidence.Source,
	}
	if record.DataSource == "" {
		record.DataSource = database.FeedNone
	}
	if record.DataSource != database.FeedNone {
		record.Confidence = evidenceConfidence
	}

	scheduled := entry.NormalizedShift

	switch {
	case scheduled == ShiftOff:
		// A day off cannot be absent, whatever the feeds observed.
		record.Status = database.StatusScheduledOff
		record.FinalShift = ShiftOff
		return record

	case evidence.Seconds == 0:
		record.Status = database.StatusAbsent
		record.FinalShift = database.StatusAbsent
		record.Reason = "No Show"
		return record

	case strings.Contains(scheduled, ":"):
		hours := float64(evidence.Seconds) / 3600.0
		switch {
		case hours >= fullShiftMinHours && hours < overtimeMinHours:
			record.Status = database.StatusFullShift
			record.FinalShift = database.StatusFullShift
			record.Reason = "OK"
		case hours >= overtimeMinHours:
			record.Status = database.StatusOvertime
			record.FinalShift = database.StatusOvertime
			record.Reason = ">10h"
		case hours >= halfDayMinHours && hours < halfDayMaxHours:
			record.Status = database.StatusHalfDay
			record.FinalShift = "Half Day Annual"
			record.Reason = "Left Early (4h)"
		case hours < halfDayMaxHours:
			record.Status = database.StatusAbsent
			record.FinalShift = database.StatusAbsent
			record.Reason = "<4.5h"
		default:
			record.Status = database.StatusPartial
			record.FinalShift = database.StatusPartial
			record.Reason = "Other"
		}
		return record

	case scheduled == ShiftUnknown:
		record.Status = database.StatusUnknown
		record.FinalShift = scheduled
		record.Reason = "Shift parse error"
		return record

	default:
		// A dictionary label ("Annual", "Training", ...) with staffing
		// evidence against it is not classifiable by the hour thresholds.
		record.Status = database.StatusUnknown
		record.FinalShift = scheduled
		record.Reason = "Non-time shift"
		return record
	}
}
