package eventmock

import (
	"context"

	domain "eventflow-backend/internal/domain/event"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset reads return domain.ErrNotFound; unset writes succeed.
type Repo struct {
	CreateFn       func(ctx context.Context, e *domain.Event) error
	SaveFn         func(ctx context.Context, e *domain.Event) error
	GetByEventIDFn func(ctx context.Context, eventID string) (*domain.Event, error)
	SetStatusFn    func(ctx context.Context, eventID string, expected, next domain.Status) (*domain.Event, error)
	ListFn         func(ctx context.Context, f domain.Filter) ([]domain.Event, error)
}

func (m *Repo) Create(ctx context.Context, e *domain.Event) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, e *domain.Event) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByEventID(ctx context.Context, eventID string) (*domain.Event, error) {
	if m.GetByEventIDFn != nil {
		return m.GetByEventIDFn(ctx, eventID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) SetStatus(ctx context.Context, eventID string, expected, next domain.Status) (*domain.Event, error) {
	if m.SetStatusFn != nil {
		return m.SetStatusFn(ctx, eventID, expected, next)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Event, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}
