package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shiftledger/shiftledger/internal/database"
	"gorm.io/gorm"
)

// recordedNotifier captures notifications for assertions.
type recordedNotifier struct {
	submitted int
	resolved  int
}

func (n *recordedNotifier) SwapSubmitted(req *database.SwapRequest, agentAName, agentBName string) {
	n.submitted++
}

func (n *recordedNotifier) SwapResolved(req *database.SwapRequest) {
	n.resolved++
}

// swapFixture seeds two agents scheduled on 2025-06-10 and returns a service
// whose clock is frozen at 2025-06-05 12:00.
func swapFixture(t *testing.T) (*SwapService, *gorm.DB, *recordedNotifier) {
	t.Helper()
	db := setupTestDB(t)

	agents := []database.Agent{
		{UID: "u-1", ACDID: "1001", Name: "Jordan Doe"},
		{UID: "u-2", ACDID: "1002", Name: "Riley Roe"},
	}
	for i := range agents {
		if err := db.Create(&agents[i]).Error; err != nil {
			t.Fatalf("failed to seed agent: %v", err)
		}
	}

	entries := []database.RosterEntry{
		{YearMonth: "2025-06", AgentUID: "u-1", ShiftDate: "2025-06-10", RawShift: "09:00", NormalizedShift: "09:00", ShiftSource: database.ShiftSourcePlanner},
		{YearMonth: "2025-06", AgentUID: "u-2", ShiftDate: "2025-06-10", RawShift: "21:00", NormalizedShift: "21:00", ShiftSource: database.ShiftSourcePlanner},
	}
	for i := range entries {
		if err := db.Create(&entries[i]).Error; err != nil {
			t.Fatalf("failed to seed roster entry: %v", err)
		}
	}

	notifier := &recordedNotifier{}
	svc := NewSwapService(db, NewAgentService(db), nil, notifier)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	}
	return svc, db, notifier
}

func TestCreateRequest_SameDayRejected(t *testing.T) {
	svc, _, _ := swapFixture(t)

	_, err := svc.CreateRequest(CreateSwapInput{
		Requester: "u-1", AgentACD: "1001", Date: "2025-06-05", NewShift: "21:00",
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error for a same-day swap, got %v", err)
	}
}

func TestCreateRequest_TomorrowCutoff(t *testing.T) {
	svc, db, _ := swapFixture(t)

	db.Create(&database.RosterEntry{
		YearMonth: "2025-06", AgentUID: "u-1", ShiftDate: "2025-06-06",
		RawShift: "09:00", NormalizedShift: "09:00", ShiftSource: database.ShiftSourcePlanner,
	})

	// Before 23:59 a next-day request is allowed
	if _, err := svc.CreateRequest(CreateSwapInput{
		Requester: "u-1", AgentACD: "1001", Date: "2025-06-06", NewShift: "21:00",
	}); err != nil {
		t.Fatalf("expected next-day request before cutoff to pass, got %v", err)
	}

	// Past the cutoff it is rejected
	svc.now = func() time.Time {
		return time.Date(2025, 6, 5, 23, 59, 30, 0, time.UTC)
	}
	_, err := svc.CreateRequest(CreateSwapInput{
		Requester: "u-1", AgentACD: "1001", Date: "2025-06-06", NewShift: "21:00",
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error past the 23:59 cutoff, got %v", err)
	}
}

func TestCreateRequest_InvalidDate(t *testing.T) {
	svc, _, _ := swapFixture(t)

	_, err := svc.CreateRequest(CreateSwapInput{
		Requester: "u-1", AgentACD: "1001", Date: "next tuesday", NewShift: "21:00",
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error for unparseable date, got %v", err)
	}
}

func TestCreateRequest_SnapshotsOriginalShifts(t *testing.T) {
	svc, _, notifier := swapFixture(t)

	req, err := svc.CreateRequest(CreateSwapInput{
		Requester: "u-1", AgentACD: "1001", OtherACD: "1002",
		Date: "2025-06-10", NewShift: "21:00", NewShiftB: "09:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.SwapType != database.SwapTypeSwap {
		t.Errorf("expected two-agent request type Swap, got %q", req.SwapType)
	}
	if req.OriginalShiftA != "09:00" || req.OriginalShiftB != "21:00" {
		t.Errorf("expected original shifts snapshotted, got %q / %q", req.OriginalShiftA, req.OriginalShiftB)
	}
	if req.Status != database.SwapStatusPending {
		t.Errorf("expected Pending, got %q", req.Status)
	}
	if req.UUID == "" {
		t.Error("expected a request UUID")
	}
	if notifier.submitted != 1 {
		t.Errorf("expected 1 submitted notification, got %d", notifier.submitted)
	}
}

func TestCreateRequest_SingleAgentUpdate(t *testing.T) {
	svc, _, _ := swapFixture(t)

	req, err := svc.CreateRequest(CreateSwapInput{
		Requester: "u-1", AgentACD: "1001", Date: "2025-06-10",
		NewShift: "Annual", LeaveType: "Annual",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.SwapType != database.SwapTypeUpdate {
		t.Errorf("expected single-agent request type Update, got %q", req.SwapType)
	}
	if req.AgentBUID != "" {
		t.Errorf("expected no agent B, got %q", req.AgentBUID)
	}
}

func TestCreateRequest_RequiresScheduleEntry(t *testing.T) {
	svc, _, _ := swapFixture(t)

	// 2025-06-11 has no roster rows
	_, err := svc.CreateRequest(CreateSwapInput{
		Requester: "u-1", AgentACD: "1001", Date: "2025-06-11", NewShift: "21:00",
	})
	if !errors.Is(err, ErrNoShiftFound) {
		t.Fatalf("expected ErrNoShiftFound, got %v", err)
	}

	_, err = svc.CreateRequest(CreateSwapInput{
		Requester: "u-1", AgentACD: "9999", Date: "2025-06-10", NewShift: "21:00",
	})
	if !errors.Is(err, ErrAgentNotFound) {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}
}

func TestApprove_AppliesBothShifts(t *testing.T) {
	svc, db, notifier := swapFixture(t)

	req, err := svc.CreateRequest(CreateSwapInput{
		Requester: "u-1", AgentACD: "1001", OtherACD: "1002",
		Date: "2025-06-10", NewShift: "21:00", NewShiftB: "09:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Approve(req.UUID, "wfm-lead"); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	var entryA, entryB database.RosterEntry
	db.Where("agent_uid = ? AND shift_date = ?", "u-1", "2025-06-10").First(&entryA)
	db.Where("agent_uid = ? AND shift_date = ?", "u-2", "2025-06-10").First(&entryB)

	if entryA.NormalizedShift != "21:00" || entryB.NormalizedShift != "09:00" {
		t.Errorf("expected shifts swapped, got %q / %q", entryA.NormalizedShift, entryB.NormalizedShift)
	}
	if entryA.ShiftSource != database.ShiftSourceSwap {
		t.Errorf("expected shift source Swap, got %q", entryA.ShiftSource)
	}
	if entryA.ApprovedBy != "wfm-lead" {
		t.Errorf("expected approver stamped, got %q", entryA.ApprovedBy)
	}

	var stored database.SwapRequest
	db.Where("uuid = ?", req.UUID).First(&stored)
	if stored.Status != database.SwapStatusApproved {
		t.Errorf("expected Approved, got %q", stored.Status)
	}
	if stored.ReviewedBy != "wfm-lead" || stored.ReviewedAt == nil {
		t.Error("expected reviewer stamped on the request")
	}
	if notifier.resolved != 1 {
		t.Errorf("expected 1 resolved notification, got %d", notifier.resolved)
	}
}

func TestApprove_TerminalRequestsStayTerminal(t *testing.T) {
	svc, db, _ := swapFixture(t)

	req, err := svc.CreateRequest(CreateSwapInput{
		Requester: "u-1", AgentACD: "1001", Date: "2025-06-10", NewShift: "21:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Approve(req.UUID, "wfm-lead"); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// Second approval must not re-apply anything
	db.Model(&database.RosterEntry{}).
		Where("agent_uid = ? AND shift_date = ?", "u-1", "2025-06-10").
		Update("normalized_shift", "manual-edit")

	if err := svc.Approve(req.UUID, "someone-else"); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}

	var entry database.RosterEntry
	db.Where("agent_uid = ? AND shift_date = ?", "u-1", "2025-06-10").First(&entry)
	if entry.NormalizedShift != "manual-edit" {
		t.Errorf("second approval must not touch the schedule, got %q", entry.NormalizedShift)
	}

	if err := svc.Reject(req.UUID, "someone-else", ""); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("expected ErrAlreadyProcessed on reject after approve, got %v", err)
	}
}

func TestReject_LeavesScheduleUntouched(t *testing.T) {
	svc, db, _ := swapFixture(t)

	req, err := svc.CreateRequest(CreateSwapInput{
		Requester: "u-1", AgentACD: "1001", Date: "2025-06-10", NewShift: "21:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Reject(req.UUID, "wfm-lead", "coverage too thin"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	var entry database.RosterEntry
	db.Where("agent_uid = ? AND shift_date = ?", "u-1", "2025-06-10").First(&entry)
	if entry.NormalizedShift != "09:00" {
		t.Errorf("rejection must not change the schedule, got %q", entry.NormalizedShift)
	}

	var stored database.SwapRequest
	db.Where("uuid = ?", req.UUID).First(&stored)
	if stored.Status != database.SwapStatusRejected {
		t.Errorf("expected Rejected, got %q", stored.Status)
	}
	if stored.ReviewNotes != "coverage too thin" {
		t.Errorf("expected review notes stored, got %q", stored.ReviewNotes)
	}
}

func TestApprove_UnknownRequest(t *testing.T) {
	svc, _, _ := swapFixture(t)

	if err := svc.Approve("no-such-uuid", "wfm-lead"); !errors.Is(err, ErrSwapNotFound) {
		t.Fatalf("expected ErrSwapNotFound, got %v", err)
	}
}

func TestListPending(t *testing.T) {
	svc, _, _ := swapFixture(t)

	first, err := svc.CreateRequest(CreateSwapInput{
		Requester: "u-1", AgentACD: "1001", Date: "2025-06-10", NewShift: "21:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.CreateRequest(CreateSwapInput{
		Requester: "u-2", AgentACD: "1002", OtherACD: "1001",
		Date: "2025-06-10", NewShift: "09:00", NewShiftB: "21:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Reject(first.UUID, "wfm-lead", ""); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	pending, err := svc.ListPending()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending request, got %d", len(pending))
	}
	if pending[0].UUID != second.UUID {
		t.Errorf("expected the remaining pending request, got %s", pending[0].UUID)
	}
	if pending[0].AgentAName != "Riley Roe" || pending[0].AgentBName != "Jordan Doe" {
		t.Errorf("expected agent names resolved, got %q / %q", pending[0].AgentAName, pending[0].AgentBName)
	}
}
