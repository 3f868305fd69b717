package uow

import (
	"context"

	"eventflow-backend/internal/domain/event"
	"eventflow-backend/internal/domain/ledger"
)

// Repos are bound to the surrounding transaction.
type Repos struct {
	Events event.Repository
	Ledger ledger.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: load the event inside the tx, then pass it in
	WithinEventTx(ctx context.Context, eventID string, fn func(r Repos, e *event.Event) error) error
}
