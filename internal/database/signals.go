package database

import "time"

// Evidence feeds, in descending priority order. EIM and Aspect deliver
// login/logout session events; CMS is the call-handling productivity report.
const (
	FeedEIM    = "EIM"
	FeedAspect = "Aspect"
	FeedCMS    = "CMS"
	FeedNone   = "None"
)

// SessionRecord is one login/logout session observed by an event feed
// (EIM or Aspect). Append-only; multiple rows per agent-day are expected
// and are summed at aggregation time.
type SessionRecord struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	YearMonth    string     `gorm:"size:7;not null;index:idx_sessions_key,priority:1" json:"year_month"`
	Feed         string     `gorm:"size:16;not null;index:idx_sessions_key,priority:2" json:"feed"`
	EventDate    string     `gorm:"size:10;not null;index:idx_sessions_key,priority:3" json:"event_date"`
	AgentUID     string     `gorm:"size:64;not null;index" json:"agent_uid"`
	ACDID        string     `gorm:"column:acd_id;size:32" json:"acd_id"`
	LoginID      string     `gorm:"column:login_id;size:32" json:"login_id"`
	AgentName    string     `gorm:"size:255" json:"agent_name"`
	LoginTime    *time.Time `json:"login_time,omitempty"`
	LogoutTime   *time.Time `json:"logout_time,omitempty"`
	LogoutReason string     `gorm:"size:64" json:"logout_reason"`
	DurationSec  int64      `gorm:"not null;default:0" json:"duration_sec"`
	UploadBatch  string     `gorm:"size:16" json:"upload_batch"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (SessionRecord) TableName() string {
	return "session_records"
}

// ProductivityRecord is one row of the CMS productivity report. All
// durations are whole seconds. Append-only.
type ProductivityRecord struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	YearMonth      string    `gorm:"size:7;not null;index:idx_productivity_key,priority:1" json:"year_month"`
	ReportDate     string    `gorm:"size:10;not null;index:idx_productivity_key,priority:2" json:"report_date"`
	AgentUID       string    `gorm:"size:64;not null;index" json:"agent_uid"`
	ACDID          string    `gorm:"column:acd_id;size:32" json:"acd_id"`
	LoginID        string    `gorm:"column:login_id;size:32" json:"login_id"`
	AgentName      string    `gorm:"size:255" json:"agent_name"`
	AnsweredCalls  int       `gorm:"not null;default:0" json:"answered_calls"`
	HandleTimeSec  int64     `gorm:"not null;default:0" json:"handle_time_sec"`
	TalkTimeSec    int64     `gorm:"not null;default:0" json:"talk_time_sec"`
	HoldTimeSec    int64     `gorm:"not null;default:0" json:"hold_time_sec"`
	ACWTimeSec     int64     `gorm:"column:acw_time_sec;not null;default:0" json:"acw_time_sec"`
	AvailTimeSec   int64     `gorm:"not null;default:0" json:"avail_time_sec"`
	StaffedTimeSec int64     `gorm:"not null;default:0" json:"staffed_time_sec"`
	UploadBatch    string    `gorm:"size:16" json:"upload_batch"`
	CreatedAt      time.Time `json:"created_at"`
}

func (ProductivityRecord) TableName() string {
	return "productivity_records"
}
