// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"salesdash_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Synchronization Domain Events
// =============================================================================

// SyncCompleted is published after a full-refresh synchronization pass commits.
// The reporting module subscribes to it to invalidate its record snapshot.
type SyncCompleted struct {
	BaseEvent
	RunID    uuid.UUID     `json:"runId"`
	Table    string        `json:"table"`
	Inserted int           `json:"inserted"`
	Rejected int           `json:"rejected"`
	Duration time.Duration `json:"duration"`
}

func (e SyncCompleted) EventName() string { return "ingest.sync.completed" }

// SyncFailed is published when a synchronization pass aborts. The stored
// table must be treated as indeterminate until a later pass succeeds.
type SyncFailed struct {
	BaseEvent
	RunID  uuid.UUID `json:"runId"`
	Table  string    `json:"table"`
	Reason string    `json:"reason"`
}

func (e SyncFailed) EventName() string { return "ingest.sync.failed" }
