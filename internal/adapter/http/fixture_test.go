package http

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"eventflow-backend/internal/domain/event"
	"eventflow-backend/internal/domain/uow"
	"eventflow-backend/internal/domain/workflow"
	"eventflow-backend/internal/testutil/eventmock"
	"eventflow-backend/internal/testutil/ledgermock"
	"eventflow-backend/internal/testutil/uowmock"
	approvaluc "eventflow-backend/internal/usecase/approval"
	eventuc "eventflow-backend/internal/usecase/event"
)

// memStore backs eventmock.Repo with a map so handlers see their own writes.
type memStore struct {
	mu     sync.Mutex
	events map[string]event.Event
}

func (s *memStore) put(e event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.EventID] = e
}

func (s *memStore) get(id string) (event.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	return e, ok
}

func (s *memStore) repo() *eventmock.Repo {
	return &eventmock.Repo{
		CreateFn: func(_ context.Context, e *event.Event) error { s.put(*e); return nil },
		SaveFn:   func(_ context.Context, e *event.Event) error { s.put(*e); return nil },
		GetByEventIDFn: func(_ context.Context, id string) (*event.Event, error) {
			e, ok := s.get(id)
			if !ok {
				return nil, event.ErrNotFound
			}
			return &e, nil
		},
		SetStatusFn: func(_ context.Context, id string, expected, next event.Status) (*event.Event, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			e, ok := s.events[id]
			if !ok {
				return nil, event.ErrNotFound
			}
			if e.Status != expected {
				return nil, event.ErrConflict
			}
			e.Status = next
			s.events[id] = e
			return &e, nil
		},
		ListFn: func(_ context.Context, f event.Filter) ([]event.Event, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var out []event.Event
			for _, e := range s.events {
				if len(f.Statuses) > 0 && !containsStatus(f.Statuses, e.Status) {
					continue
				}
				if f.CreatedBy != "" && e.CreatedBy != f.CreatedBy {
					continue
				}
				if f.Monetary != nil && e.IsMonetary != *f.Monetary {
					continue
				}
				out = append(out, e)
			}
			sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
			return out, nil
		},
	}
}

func containsStatus(list []event.Status, s event.Status) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

type fixture struct {
	store  *memStore
	ledger *ledgermock.Repo
	e      *echo.Echo
}

func newFixture(t *testing.T, rdb *redis.Client) *fixture {
	t.Helper()
	return newFixtureWithQueue(t, rdb, nil)
}

// newFixtureWithQueue wires deferred as the retry queue for failed ledger
// appends.
func newFixtureWithQueue(t *testing.T, rdb *redis.Client, deferred approvaluc.DeferredLedger) *fixture {
	t.Helper()
	store := &memStore{events: map[string]event.Event{}}
	events := store.repo()
	records := &ledgermock.Repo{}
	engine := workflow.NewEngine(workflow.MonetaryBranch)

	tx := uowmock.Passthrough(uow.Repos{Events: events, Ledger: records})
	decisions := approvaluc.NewUsecase(tx, engine, deferred, approvaluc.Options{MaxRetries: 1})

	return &fixture{
		store:  store,
		ledger: records,
		e: NewRouter(RouterDeps{
			Events:         eventuc.NewUsecase(events, records, engine),
			Decisions:      decisions,
			Redis:          rdb,
			IdempotencyTTL: time.Minute,
		}),
	}
}

func (f *fixture) seed(status event.Status, monetary bool) {
	f.store.put(event.Event{
		EventID:    eventID,
		Name:       "Spring Fair",
		Status:     status,
		IsMonetary: monetary,
		CreatedBy:  presidentID,
		CreatedAt:  time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
	})
}
