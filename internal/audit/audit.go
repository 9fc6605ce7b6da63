// Package audit emits audit facts for schedule-mutating operations.
// Persistence is the consumer's concern; the core only produces the events.
package audit

import (
	"log"
	"time"
)

// Event is one audit fact: who did what to which entity.
type Event struct {
	Actor    string    `json:"actor"`
	Action   string    `json:"action"`
	Entity   string    `json:"entity"`
	Key      string    `json:"key"`
	OldValue string    `json:"old_value,omitempty"`
	NewValue string    `json:"new_value,omitempty"`
	At       time.Time `json:"at"`
}

// Recorder receives audit events. Implementations must be safe for
// concurrent use and must not fail the calling operation.
type Recorder interface {
	Record(event Event)
}

// LogRecorder writes audit events to the process log.
type LogRecorder struct{}

// NewLogRecorder creates a new log-backed recorder
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

// Record implements Recorder.
func (r *LogRecorder) Record(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	log.Printf("audit: actor=%s action=%s entity=%s key=%s old=%q new=%q",
		event.Actor, event.Action, event.Entity, event.Key, event.OldValue, event.NewValue)
}
