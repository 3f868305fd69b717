package event

import "context"

// Filter narrows List. Zero values mean "no constraint".
type Filter struct {
	Statuses  []Status
	CreatedBy string
	Monetary  *bool
}

type Repository interface {
	Create(ctx context.Context, e *Event) error
	Save(ctx context.Context, e *Event) error

	// GetByEventID returns ErrNotFound when no event has the public id.
	GetByEventID(ctx context.Context, eventID string) (*Event, error)

	// SetStatus moves the event to next only if its stored status still equals
	// expected. A stale expectation yields ErrConflict; an unknown id ErrNotFound.
	SetStatus(ctx context.Context, eventID string, expected, next Status) (*Event, error)

	// List returns matching events, newest first.
	List(ctx context.Context, f Filter) ([]Event, error)
}
