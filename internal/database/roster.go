package database

import "time"

// Shift source tags on roster rows.
const (
	ShiftSourcePlanner = "Planner"
	ShiftSourceSwap    = "Swap"
)

// RosterEntry is the live schedule: the current authoritative shift per
// agent per date. Partitioned by year-month; at most one row per
// (year_month, agent, date). Mutated only by roster ingestion and approved
// swaps.
type RosterEntry struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	YearMonth       string     `gorm:"size:7;not null;uniqueIndex:idx_roster_live_key,priority:1" json:"year_month"`
	AgentUID        string     `gorm:"size:64;not null;uniqueIndex:idx_roster_live_key,priority:2" json:"agent_uid"`
	ShiftDate       string     `gorm:"size:10;not null;uniqueIndex:idx_roster_live_key,priority:3" json:"shift_date"`
	ACDID           string     `gorm:"column:acd_id;size:32" json:"acd_id"`
	RawShift        string     `gorm:"size:64" json:"raw_shift"`
	NormalizedShift string     `gorm:"size:32" json:"normalized_shift"`
	ShiftSource     string     `gorm:"size:16" json:"shift_source"`
	SourceFile      string     `gorm:"size:255" json:"source_file"`
	ModifiedBy      string     `gorm:"size:64" json:"modified_by"`
	ModifiedAt      *time.Time `json:"modified_at,omitempty"`
	ApprovedBy      string     `gorm:"size:64" json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (RosterEntry) TableName() string {
	return "roster_live"
}

// RosterOriginal is the append-only audit copy of the roster as ingested.
// Never updated after insert; it is the evidentiary baseline for disputes.
type RosterOriginal struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	YearMonth       string    `gorm:"size:7;not null;index:idx_roster_orig_key,priority:1" json:"year_month"`
	AgentUID        string    `gorm:"size:64;not null;index:idx_roster_orig_key,priority:2" json:"agent_uid"`
	ShiftDate       string    `gorm:"size:10;not null;index:idx_roster_orig_key,priority:3" json:"shift_date"`
	ACDID           string    `gorm:"column:acd_id;size:32" json:"acd_id"`
	RawShift        string    `gorm:"size:64" json:"raw_shift"`
	NormalizedShift string    `gorm:"size:32" json:"normalized_shift"`
	ShiftSource     string    `gorm:"size:16;default:'Planner'" json:"shift_source"`
	SourceFile      string    `gorm:"size:255" json:"source_file"`
	CreatedAt       time.Time `json:"created_at"`
}

func (RosterOriginal) TableName() string {
	return "roster_original"
}
