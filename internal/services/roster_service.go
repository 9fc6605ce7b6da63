package services

import (
	"errors"
	"fmt"

	"github.com/shiftledger/shiftledger/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RosterService owns the schedule store: the append-only original roster
// and the live roster the reconciliation engine reads.
type RosterService struct {
	db         *gorm.DB
	normalizer *NormalizerService
}

// NewRosterService creates a new roster service
func NewRosterService(db *gorm.DB, normalizer *NormalizerService) *RosterService {
	return &RosterService{db: db, normalizer: normalizer}
}

// RosterUpload is one (agent, date, shift) cell of a roster file, already
// unpivoted by the ingestion adapter.
type RosterUpload struct {
	AgentRef string `json:"agent_ref"` // UID, ACD code, login code, or name
	Date     string `json:"date"`
	RawShift string `json:"raw_shift"`
}

// IngestRoster writes roster rows into both the original (append-only) and
// live (upsert) schedules, applying the shift normalizer. Rows naming an
// unknown agent or carrying an unparseable date are skipped and reported;
// the batch itself succeeds.
func (s *RosterService) IngestRoster(rows []RosterUpload, sourceFile string) (*IngestResult, error) {
	lookup, err := loadAgentLookup(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load agent lookup: %w", err)
	}

	result := &IngestResult{UploadBatch: newBatchTag()}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			day, ok := parseDate(row.Date)
			if !ok {
				result.Warnings = append(result.Warnings, fmt.Sprintf("invalid roster date %q for %q", row.Date, row.AgentRef))
				continue
			}

			uid, ok := lookup.resolve(row.AgentRef)
			if !ok {
				result.UnknownAgents = append(result.UnknownAgents, row.AgentRef)
				continue
			}

			normalized := s.normalizer.Normalize(row.RawShift)
			var agent database.Agent
			if err := tx.Select("acd_id").Where("uid = ?", uid).First(&agent).Error; err != nil {
				return fmt.Errorf("failed to read agent %s: %w", uid, err)
			}

			original := database.RosterOriginal{
				YearMonth:       monthKey(day),
				AgentUID:        uid,
				ShiftDate:       dateKey(day),
				ACDID:           agent.ACDID,
				RawShift:        row.RawShift,
				NormalizedShift: normalized,
				ShiftSource:     database.ShiftSourcePlanner,
				SourceFile:      sourceFile,
			}
			if err := tx.Create(&original).Error; err != nil {
				return fmt.Errorf("failed to append original roster row: %w", err)
			}

			live := database.RosterEntry{
				YearMonth:       original.YearMonth,
				AgentUID:        uid,
				ShiftDate:       original.ShiftDate,
				ACDID:           agent.ACDID,
				RawShift:        row.RawShift,
				NormalizedShift: normalized,
				ShiftSource:     database.ShiftSourcePlanner,
				SourceFile:      sourceFile,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "year_month"}, {Name: "agent_uid"}, {Name: "shift_date"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"acd_id", "raw_shift", "normalized_shift", "shift_source", "source_file", "updated_at",
				}),
			}).Create(&live).Error
			if err != nil {
				return fmt.Errorf("failed to upsert live roster row: %w", err)
			}

			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// LiveEntry returns the live schedule row for an agent on a date, or
// ErrNoShiftFound.
func (s *RosterService) LiveEntry(agentUID, date string) (*database.RosterEntry, error) {
	var entry database.RosterEntry
	err := s.db.Where("agent_uid = ? AND shift_date = ?", agentUID, date).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoShiftFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// LiveForDate returns every live schedule row for a date.
func (s *RosterService) LiveForDate(date string) ([]database.RosterEntry, error) {
	var entries []database.RosterEntry
	err := s.db.Where("shift_date = ?", date).Order("agent_uid ASC").Find(&entries).Error
	return entries, err
}
