package event

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("event not found")
	ErrConflict        = errors.New("event status changed concurrently")
	ErrInvalidInput    = errors.New("invalid event input")
	ErrOnlyPresident   = errors.New("only club presidents can create events")
	ErrNotOwner        = errors.New("only the submitting president can edit this event")
	ErrNotesNotAllowed = errors.New("post-event notes require a completed event")
)

type Status string

const (
	StatusSubmitted          Status = "SUBMITTED"
	StatusVPApproved         Status = "VP_APPROVED"
	StatusAdminPending       Status = "ADMIN_PENDING"
	StatusAdminPendingSenior Status = "ADMIN_PENDING_SENIOR"
	StatusApproved           Status = "APPROVED"
	StatusRejected           Status = "REJECTED"
	StatusCompleted          Status = "COMPLETED"
	StatusClosed             Status = "CLOSED"
)

var statusLabels = map[Status]string{
	StatusSubmitted:          "Pending VP Approval",
	StatusVPApproved:         "Pending Admin Approval",
	StatusAdminPending:       "Under Admin Review",
	StatusAdminPendingSenior: "Awaiting Senior Confirmation",
	StatusApproved:           "Approved - Ready for Ops",
	StatusRejected:           "Rejected",
	StatusCompleted:          "Event Completed",
	StatusClosed:             "Closed",
}

// Statuses lists every status in workflow order.
func Statuses() []Status {
	return []Status{
		StatusSubmitted, StatusVPApproved, StatusAdminPending, StatusAdminPendingSenior,
		StatusApproved, StatusRejected, StatusCompleted, StatusClosed,
	}
}

func (s Status) Valid() bool { _, ok := statusLabels[s]; return ok }

func (s Status) Label() string { return statusLabels[s] }

// Terminal reports whether no further transition may leave s.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusClosed
}

// Event is a proposal moving through the approval workflow. Status is a cache
// of the latest accepted transition; the ledger holds the audit trail.
type Event struct {
	ID             uint64     `gorm:"primaryKey;column:id" json:"-"`
	EventID        string     `gorm:"column:event_id;size:32;not null;uniqueIndex:ux_events_event_id" json:"event_id"`
	Name           string     `gorm:"column:name;size:200;not null" json:"name"`
	Description    string     `gorm:"column:description;type:text" json:"description"`
	Venue          string     `gorm:"column:venue;size:200" json:"venue"`
	EventDate      *time.Time `gorm:"column:event_date" json:"event_date,omitempty"`
	Budget         float64    `gorm:"column:budget;type:decimal(18,2);not null;default:0" json:"budget"`
	IsMonetary     bool       `gorm:"column:is_monetary;not null;default:false" json:"is_monetary"`
	Status         Status     `gorm:"column:status;size:32;not null;index:idx_events_status" json:"status"`
	CreatedBy      string     `gorm:"column:created_by;size:32;not null;index:idx_events_created_by" json:"created_by"`
	PostEventNotes string     `gorm:"column:post_event_notes;type:text" json:"post_event_notes"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string { return "events" }
