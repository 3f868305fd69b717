package gormrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	eventDomain "eventflow-backend/internal/domain/event"
	"eventflow-backend/internal/domain/uow"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	e := makeEvent(eventDomain.StatusSubmitted, false, time.Now())
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Events.Create(ctx, e); err != nil {
			return err
		}
		return r.Ledger.Append(ctx, makeRecord(e.EventID, eventDomain.StatusSubmitted, eventDomain.StatusVPApproved, time.Now()))
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}

	if _, err := NewEventRepository(db).GetByEventID(ctx, e.EventID); err != nil {
		t.Fatalf("event not visible after commit: %v", err)
	}
	if n, _ := NewLedgerRepository(db).Count(ctx, e.EventID); n != 1 {
		t.Fatalf("ledger count = %d, want 1", n)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	e := makeEvent(eventDomain.StatusSubmitted, false, time.Now())
	boom := errors.New("boom")
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Events.Create(ctx, e); err != nil {
			return err
		}
		if err := r.Ledger.Append(ctx, makeRecord(e.EventID, eventDomain.StatusSubmitted, eventDomain.StatusVPApproved, time.Now())); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	if _, err := NewEventRepository(db).GetByEventID(ctx, e.EventID); !errors.Is(err, eventDomain.ErrNotFound) {
		t.Fatalf("event should be rolled back, got %v", err)
	}
	if n, _ := NewLedgerRepository(db).Count(ctx, e.EventID); n != 0 {
		t.Fatalf("ledger should be rolled back, count = %d", n)
	}
}

func TestGormUoW_WithinEventTx_LoadsEvent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	e := makeEvent(eventDomain.StatusVPApproved, true, time.Now())
	if err := NewEventRepository(db).Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var seen *eventDomain.Event
	err := guow.WithinEventTx(ctx, e.EventID, func(_ uow.Repos, ev *eventDomain.Event) error {
		seen = ev
		return nil
	})
	if err != nil {
		t.Fatalf("WithinEventTx: %v", err)
	}
	if seen == nil || seen.EventID != e.EventID || seen.Status != eventDomain.StatusVPApproved {
		t.Fatalf("unexpected event: %+v", seen)
	}
}

func TestGormUoW_WithinEventTx_NotFound(t *testing.T) {
	guow := NewGormUoW(openTestDB(t))
	called := false
	err := guow.WithinEventTx(context.Background(), "ffffffffffffffffffffffffffffffff", func(uow.Repos, *eventDomain.Event) error {
		called = true
		return nil
	})
	if !errors.Is(err, eventDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if called {
		t.Fatalf("callback must not run for a missing event")
	}
}

func TestGormUoW_WithinEventTx_RollsBackStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	e := makeEvent(eventDomain.StatusSubmitted, false, time.Now())
	if err := NewEventRepository(db).Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}

	boom := errors.New("boom")
	err := guow.WithinEventTx(ctx, e.EventID, func(r uow.Repos, ev *eventDomain.Event) error {
		if _, err := r.Events.SetStatus(ctx, ev.EventID, ev.Status, eventDomain.StatusVPApproved); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	got, err := NewEventRepository(db).GetByEventID(ctx, e.EventID)
	if err != nil {
		t.Fatalf("GetByEventID: %v", err)
	}
	if got.Status != eventDomain.StatusSubmitted {
		t.Fatalf("status should be rolled back, got %s", got.Status)
	}
}
