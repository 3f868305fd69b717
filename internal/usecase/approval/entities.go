package approval

import (
	"time"

	"eventflow-backend/internal/domain/actor"
	"eventflow-backend/internal/domain/workflow"
)

type DecideInput struct {
	EventID  string
	Actor    actor.Actor
	Action   workflow.Action
	Comments string
}

type DecisionDTO struct {
	EventID    string    `json:"event_id"`
	FromStatus string    `json:"from_status"`
	Status     string    `json:"status"`
	Outcome    string    `json:"outcome"`
	RecordID   string    `json:"record_id"`
	DecidedAt  time.Time `json:"decided_at"`
	// Ledger reports where the approval record ended up.
	Ledger LedgerState `json:"ledger"`
}

type LedgerState string

const (
	LedgerRecorded LedgerState = "recorded"
	// LedgerDeferred: the status change committed and the record waits in the
	// retry queue.
	LedgerDeferred LedgerState = "deferred"
	// LedgerUnrecorded: the status change committed but the record could not
	// be queued either. It survives only in the error log.
	LedgerUnrecorded LedgerState = "unrecorded"
)
