package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/shiftledger/shiftledger/internal/database"
	"gorm.io/gorm"
)

// Canonical shift sentinels.
const (
	ShiftOff     = "OFF"
	ShiftUnknown = "UNKNOWN"
)

var (
	quoteChars  = strings.NewReplacer(`"`, "", "'", "", "“", "", "”", "")
	decimalSep  = regexp.MustCompile(`(\d)[;,.](\d)`)
	timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)
)

// NormalizerService maps raw shift text onto canonical shift codes using an
// in-memory copy of the active shift dictionary. The cache is owned by the
// instance and reloaded after every registration; until then, stale reads
// are the one allowed transient inconsistency.
type NormalizerService struct {
	db *gorm.DB

	mu       sync.RWMutex
	patterns map[string]string
}

// NewNormalizerService creates a normalizer and loads the active dictionary.
func NewNormalizerService(db *gorm.DB) (*NormalizerService, error) {
	s := &NormalizerService{db: db}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh reloads the in-memory dictionary from the active patterns.
func (s *NormalizerService) Refresh() error {
	var rows []database.ShiftPattern
	if err := s.db.Where("is_active = ?", true).Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load shift dictionary: %w", err)
	}

	patterns := make(map[string]string, len(rows))
	for _, row := range rows {
		patterns[row.RawPattern] = row.NormalizedShift
	}

	s.mu.Lock()
	s.patterns = patterns
	s.mu.Unlock()
	return nil
}

// Normalize maps raw shift text to OFF, a zero-padded HH:MM token, a
// dictionary label, or UNKNOWN. It is total: no input makes it fail, so
// bulk ingestion never aborts on one unparseable cell.
func (s *NormalizerService) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, ShiftOff) {
		return ShiftOff
	}

	cleaned := quoteChars.Replace(trimmed)
	// "9,00", "9.00" and "9;00" all mean "9:00" depending on the
	// spreadsheet's locale.
	cleaned = decimalSep.ReplaceAllString(cleaned, "$1:$2")

	s.mu.RLock()
	normalized, ok := s.patterns[cleaned]
	s.mu.RUnlock()
	if ok {
		return normalized
	}

	if m := timePattern.FindStringSubmatch(cleaned); m != nil {
		hour, err1 := strconv.Atoi(m[1])
		minute, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			return fmt.Sprintf("%02d:%02d", hour, minute)
		}
	}

	return ShiftUnknown
}

// RegisterPattern persists a new dictionary mapping and reloads the cache so
// the next Normalize call observes it. A raw pattern that already exists
// returns ErrDuplicateMapping and inserts nothing.
func (s *NormalizerService) RegisterPattern(raw, normalized, shiftType, createdBy string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" || normalized == "" {
		return newValidationError("raw pattern and normalized shift are required")
	}
	if shiftType == "" {
		shiftType = "Regular"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&database.ShiftPattern{}).Where("raw_pattern = ?", raw).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateMapping
		}
		return tx.Create(&database.ShiftPattern{
			RawPattern:      raw,
			NormalizedShift: normalized,
			ShiftType:       shiftType,
			IsActive:        true,
			CreatedBy:       createdBy,
		}).Error
	})
	if err != nil {
		return err
	}

	return s.Refresh()
}

// ListPatterns returns all dictionary entries, active first, newest last.
func (s *NormalizerService) ListPatterns() ([]database.ShiftPattern, error) {
	var rows []database.ShiftPattern
	err := s.db.Order("is_active DESC, id ASC").Find(&rows).Error
	return rows, err
}
