package ledger

import (
	"errors"
	"strings"
	"time"

	"eventflow-backend/internal/domain/actor"
	"eventflow-backend/internal/domain/event"
	"eventflow-backend/pkg/id"
)

var (
	ErrMissingComments = errors.New("rejection requires comments")
	ErrInvalidRecord   = errors.New("invalid approval record")
	ErrDuplicate       = errors.New("approval record already stored")
)

type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

func (o Outcome) Valid() bool { return o == OutcomeApproved || o == OutcomeRejected }

// Record is one immutable approval decision. Records are only ever inserted.
type Record struct {
	ID           uint64       `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RecordID     string       `gorm:"column:record_id;size:32;not null;uniqueIndex:ux_approval_records_record_id" json:"record_id"`
	EventID      string       `gorm:"column:event_id;size:32;not null;index:idx_approval_records_event" json:"event_id"`
	ApproverID   string       `gorm:"column:approver_id;size:32;not null" json:"approver_id"`
	ApproverRole actor.Role   `gorm:"column:approver_role;size:32;not null" json:"approver_role"`
	Outcome      Outcome      `gorm:"column:outcome;size:16;not null" json:"outcome"`
	Comments     string       `gorm:"column:comments;type:text" json:"comments,omitempty"`
	FromStatus   event.Status `gorm:"column:from_status;size:32;not null" json:"from_status"`
	ToStatus     event.Status `gorm:"column:to_status;size:32;not null" json:"to_status"`
	CreatedAt    time.Time    `gorm:"column:created_at;not null;index:idx_approval_records_event" json:"created_at"`
}

func (Record) TableName() string { return "approval_records" }

// Entry carries the caller-supplied part of a record.
type Entry struct {
	EventID  string
	Approver actor.Actor
	Outcome  Outcome
	Comments string
	From     event.Status
	To       event.Status
}

// NewRecord builds a record stamped at now (UTC). Rejections must carry
// non-blank comments.
func NewRecord(in Entry, now time.Time) (*Record, error) {
	if in.EventID == "" || in.Approver.ID == "" || !in.Outcome.Valid() {
		return nil, ErrInvalidRecord
	}
	comments := strings.TrimSpace(in.Comments)
	if in.Outcome == OutcomeRejected && comments == "" {
		return nil, ErrMissingComments
	}
	return &Record{
		RecordID:     id.NewID32(),
		EventID:      in.EventID,
		ApproverID:   in.Approver.ID,
		ApproverRole: in.Approver.Role,
		Outcome:      in.Outcome,
		Comments:     comments,
		FromStatus:   in.From,
		ToStatus:     in.To,
		CreatedAt:    now.UTC(),
	}, nil
}

// Path rebuilds the sequence of statuses an event went through from its
// history (as returned by Repository.History, newest first).
func Path(history []Record) []event.Status {
	if len(history) == 0 {
		return nil
	}
	out := make([]event.Status, 0, len(history)+1)
	out = append(out, history[len(history)-1].FromStatus)
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i].ToStatus)
	}
	return out
}
