package services

import (
	"errors"
	"testing"

	"github.com/shiftledger/shiftledger/internal/database"
	"gorm.io/gorm"
)

func newTestRosterService(t *testing.T) (*RosterService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	normalizer, err := NewNormalizerService(db)
	if err != nil {
		t.Fatalf("failed to create normalizer: %v", err)
	}
	return NewRosterService(db, normalizer), db
}

func TestIngestRoster_WritesOriginalAndLive(t *testing.T) {
	svc, db := newTestRosterService(t)
	db.Create(&database.Agent{UID: "u-1", ACDID: "1001", Name: "Jordan Doe"})

	result, err := svc.IngestRoster([]RosterUpload{
		{AgentRef: "1001", Date: "2025-06-02", RawShift: "9,00"},
		{AgentRef: "1001", Date: "2025-06-03", RawShift: "off"},
	}, "june_roster.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 2 {
		t.Errorf("expected 2 inserted, got %d", result.Inserted)
	}

	entry, err := svc.LiveEntry("u-1", "2025-06-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.NormalizedShift != "09:00" {
		t.Errorf("expected normalized 09:00, got %q", entry.NormalizedShift)
	}
	if entry.RawShift != "9,00" {
		t.Errorf("expected raw shift preserved, got %q", entry.RawShift)
	}
	if entry.ShiftSource != database.ShiftSourcePlanner {
		t.Errorf("expected source Planner, got %q", entry.ShiftSource)
	}
	if entry.SourceFile != "june_roster.xlsx" {
		t.Errorf("expected source file recorded, got %q", entry.SourceFile)
	}

	entry, err = svc.LiveEntry("u-1", "2025-06-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.NormalizedShift != ShiftOff {
		t.Errorf("expected OFF, got %q", entry.NormalizedShift)
	}

	var originals int64
	db.Model(&database.RosterOriginal{}).Count(&originals)
	if originals != 2 {
		t.Errorf("expected 2 original rows, got %d", originals)
	}
}

func TestIngestRoster_ReuploadUpdatesLiveAppendsOriginal(t *testing.T) {
	svc, db := newTestRosterService(t)
	db.Create(&database.Agent{UID: "u-1", ACDID: "1001", Name: "Jordan Doe"})

	if _, err := svc.IngestRoster([]RosterUpload{
		{AgentRef: "1001", Date: "2025-06-02", RawShift: "09:00"},
	}, "v1.xlsx"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.IngestRoster([]RosterUpload{
		{AgentRef: "1001", Date: "2025-06-02", RawShift: "21:00"},
	}, "v2.xlsx"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var liveCount, originalCount int64
	db.Model(&database.RosterEntry{}).Count(&liveCount)
	db.Model(&database.RosterOriginal{}).Count(&originalCount)
	if liveCount != 1 {
		t.Errorf("expected live schedule upserted to 1 row, got %d", liveCount)
	}
	if originalCount != 2 {
		t.Errorf("expected original roster to keep both uploads, got %d", originalCount)
	}

	entry, err := svc.LiveEntry("u-1", "2025-06-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.NormalizedShift != "21:00" {
		t.Errorf("expected latest upload to win, got %q", entry.NormalizedShift)
	}
	if entry.SourceFile != "v2.xlsx" {
		t.Errorf("expected source file updated, got %q", entry.SourceFile)
	}
}

func TestIngestRoster_RowQuality(t *testing.T) {
	svc, db := newTestRosterService(t)
	db.Create(&database.Agent{UID: "u-1", ACDID: "1001", Name: "Jordan Doe"})

	result, err := svc.IngestRoster([]RosterUpload{
		{AgentRef: "1001", Date: "garbage", RawShift: "09:00"},
		{AgentRef: "9999", Date: "2025-06-02", RawShift: "09:00"},
		{AgentRef: "1001", Date: "2025-06-02", RawShift: "09:00"},
	}, "june_roster.xlsx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 1 {
		t.Errorf("expected 1 inserted, got %d", result.Inserted)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected 1 date warning, got %v", result.Warnings)
	}
	if len(result.UnknownAgents) != 1 || result.UnknownAgents[0] != "9999" {
		t.Errorf("expected unknown agent 9999, got %v", result.UnknownAgents)
	}
}

func TestLiveEntry_NotFound(t *testing.T) {
	svc, _ := newTestRosterService(t)

	if _, err := svc.LiveEntry("u-1", "2025-06-02"); !errors.Is(err, ErrNoShiftFound) {
		t.Fatalf("expected ErrNoShiftFound, got %v", err)
	}
}

func TestLiveForDate(t *testing.T) {
	svc, db := newTestRosterService(t)
	db.Create(&database.Agent{UID: "u-1", ACDID: "1001", Name: "Jordan Doe"})
	db.Create(&database.Agent{UID: "u-2", ACDID: "1002", Name: "Riley Roe"})

	if _, err := svc.IngestRoster([]RosterUpload{
		{AgentRef: "1001", Date: "2025-06-02", RawShift: "09:00"},
		{AgentRef: "1002", Date: "2025-06-02", RawShift: "21:00"},
		{AgentRef: "1001", Date: "2025-06-03", RawShift: "09:00"},
	}, "june_roster.xlsx"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := svc.LiveForDate("2025-06-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].AgentUID != "u-1" || entries[1].AgentUID != "u-2" {
		t.Errorf("expected entries ordered by agent, got %s then %s", entries[0].AgentUID, entries[1].AgentUID)
	}
}
