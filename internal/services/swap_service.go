package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shiftledger/shiftledger/internal/audit"
	"github.com/shiftledger/shiftledger/internal/database"
	"gorm.io/gorm"
)

// swapCutoffHour/Minute is the daily deadline for next-day requests.
const (
	swapCutoffHour   = 23
	swapCutoffMinute = 59
)

// SwapNotifier receives swap lifecycle events, e.g. to post them to an
// approvals channel. Implementations must not block on failure paths.
type SwapNotifier interface {
	SwapSubmitted(req *database.SwapRequest, agentAName, agentBName string)
	SwapResolved(req *database.SwapRequest)
}

// SwapService is the state machine over swap requests. Approved requests
// write directly into the live schedule the reconciliation engine reads;
// re-running CalculateForDate for the affected date is the caller's
// responsibility.
type SwapService struct {
	db       *gorm.DB
	agents   *AgentService
	recorder audit.Recorder
	notifier SwapNotifier

	now func() time.Time
}

// NewSwapService creates a new swap service. notifier may be nil.
func NewSwapService(db *gorm.DB, agents *AgentService, recorder audit.Recorder, notifier SwapNotifier) *SwapService {
	return &SwapService{
		db:       db,
		agents:   agents,
		recorder: recorder,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateSwapInput names the requester, one or two agents by external code,
// the target date, and the requested shift values.
type CreateSwapInput struct {
	Requester string `json:"requester"`
	AgentACD  string `json:"agent_acd"`
	OtherACD  string `json:"other_acd"`
	Date      string `json:"date"`
	NewShift  string `json:"new_shift"`
	NewShiftB string `json:"new_shift_b"`
	LeaveType string `json:"leave_type"`
}

// CreateRequest validates and submits a swap request. Same-day targets are
// rejected outright; targets of tomorrow are rejected after the 23:59 local
// cutoff. The current live shifts are snapshotted as the request's original
// values at submission time and are not re-read at approval.
func (s *SwapService) CreateRequest(input CreateSwapInput) (*database.SwapRequest, error) {
	day, ok := parseDate(input.Date)
	if !ok {
		return nil, newValidationError(fmt.Sprintf("invalid swap date %q", input.Date))
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	target := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())

	if target.Equal(today) {
		return nil, newValidationError("same-day swaps are not allowed")
	}
	if target.Equal(today.AddDate(0, 0, 1)) {
		cutoff := time.Date(now.Year(), now.Month(), now.Day(), swapCutoffHour, swapCutoffMinute, 0, 0, now.Location())
		if now.After(cutoff) {
			return nil, newValidationError("swap deadline (23:59) passed for tomorrow")
		}
	}

	agentA, err := s.agents.FindByCode(input.AgentACD)
	if err != nil {
		return nil, err
	}
	shiftA, err := s.liveShift(agentA.UID, dateKey(day))
	if err != nil {
		return nil, err
	}

	req := &database.SwapRequest{
		UUID:            uuid.NewString(),
		RequesterUID:    input.Requester,
		AgentAUID:       agentA.UID,
		ShiftDate:       dateKey(day),
		OriginalShiftA:  shiftA,
		RequestedShiftA: input.NewShift,
		SwapType:        database.SwapTypeUpdate,
		LeaveType:       input.LeaveType,
		Status:          database.SwapStatusPending,
		SubmittedBy:     input.Requester,
		SubmittedAt:     now,
	}

	agentBName := ""
	if input.OtherACD != "" {
		agentB, err := s.agents.FindByCode(input.OtherACD)
		if err != nil {
			return nil, err
		}
		shiftB, err := s.liveShift(agentB.UID, dateKey(day))
		if err != nil {
			return nil, err
		}
		req.AgentBUID = agentB.UID
		req.OriginalShiftB = shiftB
		req.RequestedShiftB = input.NewShiftB
		req.SwapType = database.SwapTypeSwap
		agentBName = agentB.Name
	}

	if err := s.db.Create(req).Error; err != nil {
		return nil, fmt.Errorf("failed to create swap request: %w", err)
	}

	s.record(input.Requester, "swap.submitted", req.UUID, "", string(req.Status))
	if s.notifier != nil {
		s.notifier.SwapSubmitted(req, agentA.Name, agentBName)
	}
	return req, nil
}

// Approve applies a pending request: the requested shift values are written
// into the live schedule and the request flips to Approved, all in one
// transaction. Concurrent approvals of the same request resolve to exactly
// one success; the loser gets ErrAlreadyProcessed.
func (s *SwapService) Approve(requestUUID, reviewer string) error {
	req, err := s.getByUUID(requestUUID)
	if err != nil {
		return err
	}
	if req.IsTerminal() {
		return ErrAlreadyProcessed
	}

	now := s.now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.applyShift(tx, req.AgentAUID, req.ShiftDate, req.RequestedShiftA, reviewer, now); err != nil {
			return err
		}
		if req.AgentBUID != "" {
			if err := s.applyShift(tx, req.AgentBUID, req.ShiftDate, req.RequestedShiftB, reviewer, now); err != nil {
				return err
			}
		}

		// The Pending guard and the flip are one statement, so a racing
		// approval that committed first leaves zero rows for us to update.
		res := tx.Model(&database.SwapRequest{}).
			Where("uuid = ? AND status = ?", req.UUID, database.SwapStatusPending).
			Updates(map[string]interface{}{
				"status":      database.SwapStatusApproved,
				"reviewed_by": reviewer,
				"reviewed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}
		return nil
	})
	if err != nil {
		return err
	}

	req.Status = database.SwapStatusApproved
	req.ReviewedBy = reviewer
	req.ReviewedAt = &now
	s.record(reviewer, "swap.approved", req.UUID, string(database.SwapStatusPending), string(req.Status))
	if s.notifier != nil {
		s.notifier.SwapResolved(req)
	}
	return nil
}

// Reject flips a pending request to Rejected without touching the schedule.
func (s *SwapService) Reject(requestUUID, reviewer, notes string) error {
	req, err := s.getByUUID(requestUUID)
	if err != nil {
		return err
	}
	if req.IsTerminal() {
		return ErrAlreadyProcessed
	}

	now := s.now()
	res := s.db.Model(&database.SwapRequest{}).
		Where("uuid = ? AND status = ?", req.UUID, database.SwapStatusPending).
		Updates(map[string]interface{}{
			"status":       database.SwapStatusRejected,
			"reviewed_by":  reviewer,
			"reviewed_at":  now,
			"review_notes": notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyProcessed
	}

	req.Status = database.SwapStatusRejected
	req.ReviewedBy = reviewer
	req.ReviewedAt = &now
	s.record(reviewer, "swap.rejected", req.UUID, string(database.SwapStatusPending), string(req.Status))
	if s.notifier != nil {
		s.notifier.SwapResolved(req)
	}
	return nil
}

// PendingSwap is a pending request with the agent names resolved for
// approval UIs.
type PendingSwap struct {
	database.SwapRequest
	AgentAName string `json:"agent_a_name"`
	AgentBName string `json:"agent_b_name,omitempty"`
}

// ListPending returns pending requests, newest first.
func (s *SwapService) ListPending() ([]PendingSwap, error) {
	var requests []database.SwapRequest
	err := s.db.Where("status = ?", database.SwapStatusPending).
		Order("submitted_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}

	uids := make([]string, 0, len(requests)*2)
	for _, r := range requests {
		uids = append(uids, r.AgentAUID)
		if r.AgentBUID != "" {
			uids = append(uids, r.AgentBUID)
		}
	}
	names := map[string]string{}
	if len(uids) > 0 {
		var agents []database.Agent
		if err := s.db.Select("uid, name").Where("uid IN ?", uids).Find(&agents).Error; err != nil {
			return nil, err
		}
		for _, a := range agents {
			names[a.UID] = a.Name
		}
	}

	pending := make([]PendingSwap, 0, len(requests))
	for _, r := range requests {
		pending = append(pending, PendingSwap{
			SwapRequest: r,
			AgentAName:  names[r.AgentAUID],
			AgentBName:  names[r.AgentBUID],
		})
	}
	return pending, nil
}

func (s *SwapService) getByUUID(requestUUID string) (*database.SwapRequest, error) {
	var req database.SwapRequest
	err := s.db.Where("uuid = ?", requestUUID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSwapNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *SwapService) liveShift(agentUID, date string) (string, error) {
	var entry database.RosterEntry
	err := s.db.Where("agent_uid = ? AND shift_date = ?", agentUID, date).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNoShiftFound
	}
	if err != nil {
		return "", err
	}
	return entry.NormalizedShift, nil
}

func (s *SwapService) applyShift(tx *gorm.DB, agentUID, date, shift, reviewer string, now time.Time) error {
	res := tx.Model(&database.RosterEntry{}).
		Where("agent_uid = ? AND shift_date = ?", agentUID, date).
		Updates(map[string]interface{}{
			"raw_shift":        shift,
			"normalized_shift": shift,
			"shift_source":     database.ShiftSourceSwap,
			"modified_by":      reviewer,
			"modified_at":      now,
			"approved_by":      reviewer,
			"approved_at":      now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update live schedule for %s on %s: %w", agentUID, date, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNoShiftFound
	}
	return nil
}

func (s *SwapService) record(actor, action, key, oldValue, newValue string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(audit.Event{
		Actor:    actor,
		Action:   action,
		Entity:   "swap_request",
		Key:      key,
		OldValue: oldValue,
		NewValue: newValue,
	})
}
