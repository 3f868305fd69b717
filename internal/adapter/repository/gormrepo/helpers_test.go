package gormrepo

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"eventflow-backend/internal/domain/event"
	"eventflow-backend/internal/domain/ledger"
	"eventflow-backend/internal/infrastructure/db"
)

// openTestDB returns a migrated in-memory SQLite DB. A single connection keeps
// every query on the same :memory: database and serializes transactions.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

var seq int

func hexID(prefix byte) string {
	seq++
	return fmt.Sprintf("%c%031x", prefix, seq)
}

func makeEvent(status event.Status, monetary bool, created time.Time) *event.Event {
	e := &event.Event{
		EventID:    hexID('e'),
		Name:       "Robotics Showcase",
		Venue:      "Main Hall",
		IsMonetary: monetary,
		Status:     status,
		CreatedBy:  "c0000000000000000000000000000001",
		CreatedAt:  created.UTC(),
	}
	if monetary {
		e.Budget = 1500.50
	}
	return e
}

func makeRecord(eventID string, from, to event.Status, at time.Time) *ledger.Record {
	return &ledger.Record{
		RecordID:     hexID('d'),
		EventID:      eventID,
		ApproverID:   "a0000000000000000000000000000001",
		ApproverRole: "VP_CLUBS",
		Outcome:      ledger.OutcomeApproved,
		FromStatus:   from,
		ToStatus:     to,
		CreatedAt:    at.UTC(),
	}
}
