package uowmock

import (
	"context"
	"errors"

	"eventflow-backend/internal/domain/event"
	"eventflow-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn      func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinEventTxFn func(ctx context.Context, eventID string, fn func(r uow.Repos, e *event.Event) error) error
}

// Passthrough runs callbacks directly against repos, loading the event from
// repos.Events for WithinEventTx. There is no rollback.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinEventTxFn: func(ctx context.Context, eventID string, fn func(uow.Repos, *event.Event) error) error {
			e, err := repos.Events.GetByEventID(ctx, eventID)
			if err != nil {
				return err
			}
			return fn(repos, e)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinEventTx(ctx context.Context, eventID string, fn func(r uow.Repos, e *event.Event) error) error {
	if m.WithinEventTxFn != nil {
		return m.WithinEventTxFn(ctx, eventID, fn)
	}
	return errUnimplemented
}
