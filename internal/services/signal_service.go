package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shiftledger/shiftledger/internal/database"
	"gorm.io/gorm"
)

// SignalService ingests the raw attendance evidence feeds and resolves them
// into one staffed-seconds value per agent per date.
type SignalService struct {
	db *gorm.DB
}

// NewSignalService creates a new signal service
func NewSignalService(db *gorm.DB) *SignalService {
	return &SignalService{db: db}
}

// StaffedEvidence is the resolved staffing evidence for one agent-day:
// total staffed seconds and the feed that provided them.
type StaffedEvidence struct {
	Seconds int64  `json:"seconds"`
	Source  string `json:"source"`
}

// SessionUpload is one login/logout row from an event feed export.
type SessionUpload struct {
	AgentRef     string `json:"agent_ref"`
	AgentName    string `json:"agent_name"`
	Date         string `json:"date"`
	LoginTime    string `json:"login_time"`
	LogoutTime   string `json:"logout_time"`
	LogoutDate   string `json:"logout_date"`
	LogoutReason string `json:"logout_reason"`
}

// ProductivityUpload is one row of the CMS productivity report.
type ProductivityUpload struct {
	AgentRef       string `json:"agent_ref"`
	AgentName      string `json:"agent_name"`
	Date           string `json:"date"`
	AnsweredCalls  int    `json:"answered_calls"`
	HandleTimeSec  int64  `json:"handle_time_sec"`
	TalkTimeSec    int64  `json:"talk_time_sec"`
	HoldTimeSec    int64  `json:"hold_time_sec"`
	ACWTimeSec     int64  `json:"acw_time_sec"`
	AvailTimeSec   int64  `json:"avail_time_sec"`
	StaffedTimeSec int64  `json:"staffed_time_sec"`
}

// sessionFeeds are the feeds IngestSessions accepts.
var sessionFeeds = map[string]string{
	"eim":    database.FeedEIM,
	"aspect": database.FeedAspect,
}

// IngestSessions appends session rows for one event feed. Rows with an
// unparseable event date are skipped and counted as warnings; the batch
// still succeeds. A logout clock time without a parsable pair yields a
// zero-duration session, which is still authoritative evidence.
func (s *SignalService) IngestSessions(feed string, rows []SessionUpload) (*IngestResult, error) {
	canonical, ok := sessionFeeds[strings.ToLower(strings.TrimSpace(feed))]
	if !ok {
		return nil, newValidationError(fmt.Sprintf("unknown session feed %q", feed))
	}

	lookup, err := loadAgentLookup(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load agent lookup: %w", err)
	}

	result := &IngestResult{UploadBatch: newBatchTag()}
	seenUnknown := map[string]bool{}

	for i, row := range rows {
		day, ok := parseDate(row.Date)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: invalid event date %q", i, row.Date))
			continue
		}

		uid, ok := lookup.resolve(row.AgentRef)
		if !ok {
			if !seenUnknown[row.AgentRef] {
				seenUnknown[row.AgentRef] = true
				result.UnknownAgents = append(result.UnknownAgents, row.AgentRef)
			}
			continue
		}

		loginAt := parseClock(row.LoginTime, day)
		logoutDay := day
		if row.LogoutDate != "" {
			if d, ok := parseDate(row.LogoutDate); ok {
				logoutDay = d
			}
		}
		logoutAt := parseClock(row.LogoutTime, logoutDay)

		var duration int64
		if loginAt != nil && logoutAt != nil {
			duration = int64(logoutAt.Sub(*loginAt).Seconds())
			if duration < 0 {
				duration = 0
			}
		}

		var agent database.Agent
		if err := s.db.Select("acd_id, login_id").Where("uid = ?", uid).First(&agent).Error; err != nil {
			return nil, fmt.Errorf("failed to read agent %s: %w", uid, err)
		}

		record := database.SessionRecord{
			YearMonth:    monthKey(day),
			Feed:         canonical,
			EventDate:    dateKey(day),
			AgentUID:     uid,
			ACDID:        agent.ACDID,
			LoginID:      agent.LoginID,
			AgentName:    row.AgentName,
			LoginTime:    loginAt,
			LogoutTime:   logoutAt,
			LogoutReason: row.LogoutReason,
			DurationSec:  duration,
			UploadBatch:  result.UploadBatch,
		}
		if err := s.db.Create(&record).Error; err != nil {
			return nil, fmt.Errorf("failed to insert session row: %w", err)
		}
		result.Inserted++
	}

	return result, nil
}

// IngestProductivity appends CMS productivity rows. Same row-level date
// quality policy as IngestSessions.
func (s *SignalService) IngestProductivity(rows []ProductivityUpload) (*IngestResult, error) {
	lookup, err := loadAgentLookup(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load agent lookup: %w", err)
	}

	result := &IngestResult{UploadBatch: newBatchTag()}
	seenUnknown := map[string]bool{}

	for i, row := range rows {
		day, ok := parseDate(row.Date)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: invalid report date %q", i, row.Date))
			continue
		}

		uid, ok := lookup.resolve(row.AgentRef)
		if !ok {
			if !seenUnknown[row.AgentRef] {
				seenUnknown[row.AgentRef] = true
				result.UnknownAgents = append(result.UnknownAgents, row.AgentRef)
			}
			continue
		}

		var agent database.Agent
		if err := s.db.Select("acd_id, login_id").Where("uid = ?", uid).First(&agent).Error; err != nil {
			return nil, fmt.Errorf("failed to read agent %s: %w", uid, err)
		}

		record := database.ProductivityRecord{
			YearMonth:      monthKey(day),
			ReportDate:     dateKey(day),
			AgentUID:       uid,
			ACDID:          agent.ACDID,
			LoginID:        agent.LoginID,
			AgentName:      row.AgentName,
			AnsweredCalls:  row.AnsweredCalls,
			HandleTimeSec:  row.HandleTimeSec,
			TalkTimeSec:    row.TalkTimeSec,
			HoldTimeSec:    row.HoldTimeSec,
			ACWTimeSec:     row.ACWTimeSec,
			AvailTimeSec:   row.AvailTimeSec,
			StaffedTimeSec: row.StaffedTimeSec,
			UploadBatch:    result.UploadBatch,
		}
		if err := s.db.Create(&record).Error; err != nil {
			return nil, fmt.Errorf("failed to insert productivity row: %w", err)
		}
		result.Inserted++
	}

	return result, nil
}

// agentTotal is the scan target for the per-agent SUM queries.
type agentTotal struct {
	AgentUID string
	Total    int64
}

// ResolveForDate merges the three evidence feeds into one staffed-seconds
// value per agent. Sources are folded highest priority first (EIM, then
// Aspect, then CMS) with insert-if-absent semantics: once a higher-priority
// feed has observed an agent, lower-priority feeds never override it, even
// when the observed total is zero. Agents absent from every feed get no
// entry at all.
func (s *SignalService) ResolveForDate(day time.Time) (map[string]StaffedEvidence, error) {
	ym := monthKey(day)
	date := dateKey(day)

	sources := []struct {
		name string
		load func() ([]agentTotal, error)
	}{
		{database.FeedEIM, func() ([]agentTotal, error) { return s.sumSessions(ym, database.FeedEIM, date) }},
		{database.FeedAspect, func() ([]agentTotal, error) { return s.sumSessions(ym, database.FeedAspect, date) }},
		{database.FeedCMS, func() ([]agentTotal, error) { return s.sumProductivity(ym, date) }},
	}

	resolved := make(map[string]StaffedEvidence)
	for _, src := range sources {
		totals, err := src.load()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s evidence: %w", src.name, err)
		}
		for _, t := range totals {
			if _, ok := resolved[t.AgentUID]; ok {
				continue
			}
			resolved[t.AgentUID] = StaffedEvidence{Seconds: t.Total, Source: src.name}
		}
	}

	return resolved, nil
}

func (s *SignalService) sumSessions(yearMonth, feed, date string) ([]agentTotal, error) {
	var totals []agentTotal
	err := s.db.Model(&database.SessionRecord{}).
		Select("agent_uid, SUM(duration_sec) AS total").
		Where("year_month = ? AND feed = ? AND event_date = ?", yearMonth, feed, date).
		Group("agent_uid").
		Scan(&totals).Error
	return totals, err
}

func (s *SignalService) sumProductivity(yearMonth, date string) ([]agentTotal, error) {
	var totals []agentTotal
	err := s.db.Model(&database.ProductivityRecord{}).
		Select("agent_uid, SUM(staffed_time_sec) AS total").
		Where("year_month = ? AND report_date = ?", yearMonth, date).
		Group("agent_uid").
		Scan(&totals).Error
	return totals, err
}

// clockLayouts are the clock-time spellings seen in the event feed exports.
var clockLayouts = []string{"3:04PM", "3:04 PM", "15:04", "15:04:05"}

// parseClock combines a clock-time string with a calendar day. Returns nil
// for blank, "0", or unparseable values; session duration then falls back
// to zero rather than failing the row.
func parseClock(raw string, day time.Time) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return nil
	}
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, strings.ToUpper(raw))
		if err != nil {
			continue
		}
		at := time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
		return &at
	}
	return nil
}
