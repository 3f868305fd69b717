package ledgermock

import (
	"context"
	"sync"

	domain "eventflow-backend/internal/domain/ledger"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// With AppendFn unset it records appended rows in Appended.
type Repo struct {
	AppendFn  func(ctx context.Context, r *domain.Record) error
	HistoryFn func(ctx context.Context, eventID string) ([]domain.Record, error)
	CountFn   func(ctx context.Context, eventID string) (int64, error)

	mu       sync.Mutex
	Appended []domain.Record
}

func (m *Repo) Append(ctx context.Context, r *domain.Record) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Appended = append(m.Appended, *r)
	return nil
}

func (m *Repo) History(ctx context.Context, eventID string) ([]domain.Record, error) {
	if m.HistoryFn != nil {
		return m.HistoryFn(ctx, eventID)
	}
	return nil, nil
}

func (m *Repo) Count(ctx context.Context, eventID string) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, eventID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.Appended {
		if r.EventID == eventID {
			n++
		}
	}
	return n, nil
}
