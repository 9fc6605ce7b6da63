package database

import "time"

// Agent is the master identity record for a scheduled worker. The UID is the
// immutable identity key; ACDID and LoginID are alternate lookup codes used
// to match agents across telemetry sources.
type Agent struct {
	UID            string     `gorm:"primaryKey;size:64" json:"uid"`
	ACDID          string     `gorm:"column:acd_id;uniqueIndex;size:32" json:"acd_id"`
	LoginID        string     `gorm:"column:login_id;index;size:32" json:"login_id"`
	Name           string     `gorm:"size:255" json:"name"`
	Premises       string     `gorm:"size:64" json:"premises"`
	Segment        string     `gorm:"size:64" json:"segment"`
	Queue          string     `gorm:"size:64" json:"queue"`
	Language       string     `gorm:"size:32" json:"language"`
	Batch          string     `gorm:"size:32" json:"batch"`
	TeamLeader     string     `gorm:"size:255" json:"team_leader"`
	Supervisor     string     `gorm:"size:255" json:"supervisor"`
	Manager        string     `gorm:"size:255" json:"manager"`
	Status         string     `gorm:"size:16;default:'Active'" json:"status"`
	LastWorkingDay *time.Time `gorm:"type:date" json:"last_working_day,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Agent) TableName() string {
	return "agents"
}

// IsActive reports whether the agent is still on the books.
func (a *Agent) IsActive() bool {
	return a.Status == "Active"
}

// ShiftPattern is one entry of the shift dictionary: a raw spreadsheet
// spelling mapped to its canonical shift value.
type ShiftPattern struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RawPattern      string    `gorm:"uniqueIndex;size:64;not null" json:"raw_pattern"`
	NormalizedShift string    `gorm:"size:32;not null" json:"normalized_shift"`
	ShiftType       string    `gorm:"size:32;default:'Regular'" json:"shift_type"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	CreatedBy       string    `gorm:"size:64" json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

func (ShiftPattern) TableName() string {
	return "shift_patterns"
}

// SwapStatus is the lifecycle state of a swap request.
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "Pending"
	SwapStatusApproved SwapStatus = "Approved"
	SwapStatusRejected SwapStatus = "Rejected"
)

// SwapType classifies a request: a two-agent exchange or a one-agent update.
const (
	SwapTypeSwap   = "Swap"
	SwapTypeUpdate = "Update"
)

// SwapRequest is a proposed change to one or two agents' live schedule
// entries for a single date. It transitions exactly once from Pending to
// Approved or Rejected and is never reopened.
type SwapRequest struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UUID            string     `gorm:"uniqueIndex;not null" json:"uuid"`
	RequesterUID    string     `gorm:"size:64;not null" json:"requester_uid"`
	AgentAUID       string     `gorm:"column:agent_a_uid;size:64;not null;index" json:"agent_a_uid"`
	AgentBUID       string     `gorm:"column:agent_b_uid;size:64;index" json:"agent_b_uid"`
	ShiftDate       string     `gorm:"size:10;not null;index" json:"shift_date"`
	OriginalShiftA  string     `gorm:"size:64" json:"original_shift_a"`
	OriginalShiftB  string     `gorm:"size:64" json:"original_shift_b"`
	RequestedShiftA string     `gorm:"size:64" json:"requested_shift_a"`
	RequestedShiftB string     `gorm:"size:64" json:"requested_shift_b"`
	SwapType        string     `gorm:"size:16" json:"swap_type"`
	LeaveType       string     `gorm:"size:32" json:"leave_type"`
	Status          SwapStatus `gorm:"type:varchar(16);not null;default:'Pending'" json:"status"`
	PolicyViolation string     `gorm:"size:255" json:"policy_violation"`
	SubmittedBy     string     `gorm:"size:64" json:"submitted_by"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	ReviewedBy      string     `gorm:"size:64" json:"reviewed_by"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	ReviewNotes     string     `gorm:"type:text" json:"review_notes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (SwapRequest) TableName() string {
	return "swap_requests"
}

// IsTerminal reports whether the request has reached a final state.
func (s *SwapRequest) IsTerminal() bool {
	return s.Status != SwapStatusPending
}
