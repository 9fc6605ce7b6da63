package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shiftledger/shiftledger/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AgentService maintains the agent master records.
type AgentService struct {
	db *gorm.DB
}

// NewAgentService creates a new agent service
func NewAgentService(db *gorm.DB) *AgentService {
	return &AgentService{db: db}
}

// AgentUpload is one headcount row as delivered by the ingestion adapter.
type AgentUpload struct {
	UID            string `json:"uid"`
	ACDID          string `json:"acd_id"`
	LoginID        string `json:"login_id"`
	Name           string `json:"name"`
	Premises       string `json:"premises"`
	Segment        string `json:"segment"`
	Queue          string `json:"queue"`
	Language       string `json:"language"`
	Batch          string `json:"batch"`
	TeamLeader     string `json:"team_leader"`
	Supervisor     string `json:"supervisor"`
	Manager        string `json:"manager"`
	Status         string `json:"status"`
	LastWorkingDay string `json:"last_working_day"`
}

// UpsertAgents applies headcount rows keyed by UID. An ACD code already
// assigned to a different agent rejects that row with a warning and leaves
// existing state untouched; the batch continues.
func (s *AgentService) UpsertAgents(rows []AgentUpload) (*IngestResult, error) {
	result := &IngestResult{UploadBatch: newBatchTag()}

	for _, row := range rows {
		uid := strings.TrimSpace(row.UID)
		acd := strings.TrimSpace(row.ACDID)
		if uid == "" || acd == "" || strings.TrimSpace(row.Name) == "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("agent row missing uid/acd/name (uid=%q)", row.UID))
			continue
		}

		// Alternate codes must stay unique across agents; a conflicting
		// reassignment is rejected, never merged.
		var holder database.Agent
		err := s.db.Where("acd_id = ? AND uid <> ?", acd, uid).First(&holder).Error
		if err == nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("ACD code %s already assigned to %s, skipping %s", acd, holder.UID, uid))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check ACD code %s: %w", acd, err)
		}

		agent := database.Agent{
			UID:        uid,
			ACDID:      acd,
			LoginID:    strings.TrimSpace(row.LoginID),
			Name:       strings.TrimSpace(row.Name),
			Premises:   row.Premises,
			Segment:    row.Segment,
			Queue:      row.Queue,
			Language:   row.Language,
			Batch:      row.Batch,
			TeamLeader: row.TeamLeader,
			Supervisor: row.Supervisor,
			Manager:    row.Manager,
			Status:     row.Status,
		}
		if agent.Status == "" {
			agent.Status = "Active"
		}
		if row.LastWorkingDay != "" {
			if day, ok := parseDate(row.LastWorkingDay); ok {
				agent.LastWorkingDay = &day
			} else {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("agent %s: invalid last working day %q", uid, row.LastWorkingDay))
			}
		}

		err = s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "uid"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"acd_id", "login_id", "name", "premises", "segment", "queue",
				"language", "batch", "team_leader", "supervisor", "manager",
				"status", "last_working_day", "updated_at",
			}),
		}).Create(&agent).Error
		if err != nil {
			return nil, fmt.Errorf("failed to upsert agent %s: %w", uid, err)
		}
		result.Inserted++
	}

	return result, nil
}

// FindByCode resolves an agent by ACD code, falling back to login code.
func (s *AgentService) FindByCode(code string) (*database.Agent, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrAgentNotFound
	}

	var agent database.Agent
	err := s.db.Where("acd_id = ?", code).First(&agent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.Where("login_id = ?", code).First(&agent).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAgentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// Deactivate marks an agent inactive as of the given last working day.
func (s *AgentService) Deactivate(uid string, lastWorkingDay time.Time) error {
	res := s.db.Model(&database.Agent{}).Where("uid = ?", uid).Updates(map[string]interface{}{
		"status":           "Inactive",
		"last_working_day": lastWorkingDay,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAgentNotFound
	}
	return nil
}
