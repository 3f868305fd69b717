package ledger

import "context"

type Repository interface {
	// Append stores a new record; it never touches existing rows.
	// A record whose RecordID is already stored yields ErrDuplicate.
	Append(ctx context.Context, r *Record) error

	// History returns an event's records, most recent decision first.
	History(ctx context.Context, eventID string) ([]Record, error)

	Count(ctx context.Context, eventID string) (int64, error)
}
