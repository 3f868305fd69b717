package dashboard

import (
	"sort"

	"eventflow-backend/internal/domain/actor"
	"eventflow-backend/internal/domain/event"
	"eventflow-backend/internal/domain/workflow"
)

type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Completed int `json:"completed"`
	Rejected  int `json:"rejected"`
}

// Classify buckets events by status. Pending covers every review stage;
// completed covers COMPLETED and CLOSED.
func Classify(events []event.Event) Stats {
	s := Stats{Total: len(events)}
	for _, e := range events {
		switch e.Status {
		case event.StatusSubmitted, event.StatusVPApproved,
			event.StatusAdminPending, event.StatusAdminPendingSenior:
			s.Pending++
		case event.StatusApproved:
			s.Approved++
		case event.StatusCompleted, event.StatusClosed:
			s.Completed++
		case event.StatusRejected:
			s.Rejected++
		}
	}
	return s
}

// PendingFor returns the events role can act on, oldest submission first.
// The input slice is not modified.
func PendingFor(events []event.Event, role actor.Role) []event.Event {
	stages := make(map[event.Status]struct{})
	for _, s := range workflow.StatusesFor(role) {
		stages[s] = struct{}{}
	}

	out := make([]event.Event, 0)
	for _, e := range events {
		if _, ok := stages[e.Status]; ok {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].EventID < out[j].EventID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
