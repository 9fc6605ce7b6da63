package database

import "time"

// Attendance statuses produced by the reconciliation engine.
const (
	StatusScheduledOff = "Scheduled Off"
	StatusAbsent       = "Absent"
	StatusFullShift    = "Full Shift"
	StatusOvertime     = "Overtime"
	StatusHalfDay      = "Half Day"
	StatusPartial      = "Partial"
	StatusUnknown      = "Unknown"
)

// AttendanceRecord is the reconciled verdict for one agent on one date.
// Exactly one row exists per (year_month, agent, date) that had a live
// schedule entry; recomputation replaces the whole date.
type AttendanceRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	YearMonth      string    `gorm:"size:7;not null;uniqueIndex:idx_attendance_key,priority:1" json:"year_month"`
	AgentUID       string    `gorm:"size:64;not null;uniqueIndex:idx_attendance_key,priority:2" json:"agent_uid"`
	ShiftDate      string    `gorm:"size:10;not null;uniqueIndex:idx_attendance_key,priority:3" json:"shift_date"`
	ACDID          string    `gorm:"column:acd_id;size:32" json:"acd_id"`
	ScheduledShift string    `gorm:"size:64" json:"scheduled_shift"`
	FinalShift     string    `gorm:"size:64" json:"final_shift"`
	StaffSeconds   int64     `gorm:"not null;default:0" json:"staff_seconds"`
	StaffMinutes   float64   `json:"staff_minutes"`
	Status         string    `gorm:"size:32;not null" json:"status"`
	Reason         string    `gorm:"size:64" json:"reason"`
	HCStatus       string    `gorm:"column:hc_status;size:16" json:"hc_status"`
	DataSource     string    `gorm:"size:16" json:"data_source"`
	Confidence     int       `gorm:"not null;default:0" json:"confidence"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
