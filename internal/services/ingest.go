package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shiftledger/shiftledger/internal/database"
	"gorm.io/gorm"
)

// IngestResult reports the outcome of a bulk ingestion. Row-level data
// quality problems land in Warnings and UnknownAgents; they never abort the
// batch.
type IngestResult struct {
	Inserted      int      `json:"inserted"`
	UploadBatch   string   `json:"upload_batch,omitempty"`
	UnknownAgents []string `json:"unknown_agents,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// newBatchTag returns a short identifier stamped on every row of an upload.
func newBatchTag() string {
	return uuid.NewString()[:8]
}

// agentLookup resolves the mixed external references that arrive in
// telemetry files (UID, ACD code, login code, or display name) to agent UIDs.
type agentLookup map[string]string

func loadAgentLookup(db *gorm.DB) (agentLookup, error) {
	var agents []database.Agent
	if err := db.Find(&agents).Error; err != nil {
		return nil, err
	}

	lookup := make(agentLookup, len(agents)*3)
	for _, a := range agents {
		if a.UID != "" {
			lookup[strings.TrimSpace(a.UID)] = a.UID
		}
		if a.ACDID != "" {
			lookup[strings.TrimSpace(a.ACDID)] = a.UID
		}
		if a.LoginID != "" {
			lookup[strings.TrimSpace(a.LoginID)] = a.UID
		}
		if a.Name != "" {
			lookup[strings.TrimSpace(a.Name)] = a.UID
		}
	}
	return lookup, nil
}

func (l agentLookup) resolve(refs ...string) (string, bool) {
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" || ref == "0" || ref == "Totals" {
			continue
		}
		if uid, ok := l[ref]; ok {
			return uid, true
		}
	}
	return "", false
}

// Date layouts seen across the telemetry exports.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "2-Jan-06", "02-Jan-06"}

// parseDate tries the known export layouts in order.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateKey and monthKey are the partition-addressing forms of a date.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
