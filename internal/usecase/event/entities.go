package event

import (
	"time"

	"eventflow-backend/internal/domain/event"
	"eventflow-backend/internal/domain/ledger"
	"eventflow-backend/internal/domain/workflow"
)

type CreateEventInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	EventDate   *time.Time `json:"event_date"`
	IsMonetary  bool       `json:"is_monetary"`
	Budget      float64    `json:"budget"`
}

type ListInput struct {
	Statuses  []event.Status
	CreatedBy string
	Monetary  *bool
}

type EventDTO struct {
	EventID        string     `json:"event_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Venue          string     `json:"venue"`
	EventDate      *time.Time `json:"event_date,omitempty"`
	Budget         float64    `json:"budget"`
	IsMonetary     bool       `json:"is_monetary"`
	Status         string     `json:"status"`
	StatusLabel    string     `json:"status_label"`
	CreatedBy      string     `json:"created_by"`
	PostEventNotes string     `json:"post_event_notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type EventDetailDTO struct {
	EventDTO
	History []ledger.Record `json:"history"`
	// Path is the status sequence rebuilt from History, oldest first.
	Path      []event.Status `json:"path"`
	Decisions int64          `json:"decisions"`
}

type TimelineDTO struct {
	EventID string `json:"event_id"`
	workflow.Timeline
}

func toDTO(e *event.Event) EventDTO {
	return EventDTO{
		EventID:        e.EventID,
		Name:           e.Name,
		Description:    e.Description,
		Venue:          e.Venue,
		EventDate:      e.EventDate,
		Budget:         e.Budget,
		IsMonetary:     e.IsMonetary,
		Status:         string(e.Status),
		StatusLabel:    e.Status.Label(),
		CreatedBy:      e.CreatedBy,
		PostEventNotes: e.PostEventNotes,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func toDTOs(es []event.Event) []EventDTO {
	out := make([]EventDTO, 0, len(es))
	for i := range es {
		out = append(out, toDTO(&es[i]))
	}
	return out
}
