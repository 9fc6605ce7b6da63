package testhelpers

import (
	"testing"

	"github.com/shiftledger/shiftledger/internal/database"
	"gorm.io/gorm"
)

// ========================================
// Sample Data Builders
// ========================================

// AgentBuilder builds Agent rows for testing
type AgentBuilder struct {
	agent database.Agent
}

// NewAgentBuilder creates a builder with sensible defaults
func NewAgentBuilder(uid string) *AgentBuilder {
	return &AgentBuilder{
		agent: database.Agent{
			UID:     uid,
			ACDID:   "acd-" + uid,
			LoginID: "login-" + uid,
			Name:    "Agent " + uid,
			Status:  "Active",
		},
	}
}

// WithACD sets the ACD code
func (b *AgentBuilder) WithACD(acd string) *AgentBuilder {
	b.agent.ACDID = acd
	return b
}

// WithLoginID sets the login code
func (b *AgentBuilder) WithLoginID(login string) *AgentBuilder {
	b.agent.LoginID = login
	return b
}

// WithName sets the display name
func (b *AgentBuilder) WithName(name string) *AgentBuilder {
	b.agent.Name = name
	return b
}

// Build returns the constructed agent
func (b *AgentBuilder) Build() database.Agent {
	return b.agent
}

// Create inserts the agent and returns it
func (b *AgentBuilder) Create(t *testing.T, db *gorm.DB) database.Agent {
	t.Helper()
	agent := b.Build()
	if err := db.Create(&agent).Error; err != nil {
		t.Fatalf("failed to create test agent %s: %v", agent.UID, err)
	}
	return agent
}

// RosterEntryBuilder builds live schedule rows for testing
type RosterEntryBuilder struct {
	entry database.RosterEntry
}

// NewRosterEntryBuilder creates a builder for one agent-day
func NewRosterEntryBuilder(agentUID, yearMonth, shiftDate string) *RosterEntryBuilder {
	return &RosterEntryBuilder{
		entry: database.RosterEntry{
			YearMonth:       yearMonth,
			AgentUID:        agentUID,
			ShiftDate:       shiftDate,
			RawShift:        "09:00",
			NormalizedShift: "09:00",
			ShiftSource:     database.ShiftSourcePlanner,
		},
	}
}

// WithShift sets both the raw and normalized shift
func (b *RosterEntryBuilder) WithShift(shift string) *RosterEntryBuilder {
	b.entry.RawShift = shift
	b.entry.NormalizedShift = shift
	return b
}

// Build returns the constructed entry
func (b *RosterEntryBuilder) Build() database.RosterEntry {
	return b.entry
}

// Create inserts the entry and returns it
func (b *RosterEntryBuilder) Create(t *testing.T, db *gorm.DB) database.RosterEntry {
	t.Helper()
	entry := b.Build()
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("failed to create test roster entry for %s: %v", entry.AgentUID, err)
	}
	return entry
}
