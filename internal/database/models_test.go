package database

import "testing"

func TestAgentIsActive(t *testing.T) {
	active := &Agent{UID: "u-1", Status: "Active"}
	if !active.IsActive() {
		t.Error("expected Active agent to be active")
	}

	inactive := &Agent{UID: "u-2", Status: "Inactive"}
	if inactive.IsActive() {
		t.Error("expected Inactive agent to be inactive")
	}
}

func TestSwapRequestIsTerminal(t *testing.T) {
	cases := []struct {
		status   SwapStatus
		terminal bool
	}{
		{SwapStatusPending, false},
		{SwapStatusApproved, true},
		{SwapStatusRejected, true},
	}

	for _, c := range cases {
		req := &SwapRequest{Status: c.status}
		if req.IsTerminal() != c.terminal {
			t.Errorf("IsTerminal() for %s = %v, want %v", c.status, req.IsTerminal(), c.terminal)
		}
	}
}
