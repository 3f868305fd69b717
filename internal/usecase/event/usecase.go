package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventflow-backend/internal/domain/actor"
	"eventflow-backend/internal/domain/dashboard"
	"eventflow-backend/internal/domain/event"
	"eventflow-backend/internal/domain/ledger"
	"eventflow-backend/internal/domain/workflow"
	"eventflow-backend/pkg/id"
)

type Usecase struct {
	events event.Repository
	ledger ledger.Repository
	engine workflow.Engine
	now    func() time.Time
}

func NewUsecase(events event.Repository, records ledger.Repository, engine workflow.Engine) *Usecase {
	return &Usecase{events: events, ledger: records, engine: engine, now: time.Now}
}

// Create submits a new event proposal on behalf of a PRESIDENT.
func (u *Usecase) Create(ctx context.Context, by actor.Actor, in CreateEventInput) (*EventDTO, error) {
	if by.Role != actor.RolePresident {
		return nil, event.ErrOnlyPresident
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", event.ErrInvalidInput)
	}
	if in.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must be >= 0", event.ErrInvalidInput)
	}
	budget := in.Budget
	if !in.IsMonetary {
		budget = 0
	}

	now := u.now().UTC()
	e := &event.Event{
		EventID:     id.NewID32(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Venue:       strings.TrimSpace(in.Venue),
		EventDate:   in.EventDate,
		Budget:      budget,
		IsMonetary:  in.IsMonetary,
		Status:      event.StatusSubmitted,
		CreatedBy:   by.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.events.Create(ctx, e); err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

// Get returns the event with its approval history, newest first, and the
// status path that history reconstructs.
func (u *Usecase) Get(ctx context.Context, eventID string) (*EventDetailDTO, error) {
	e, err := u.events.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	history, err := u.ledger.History(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	n, err := u.ledger.Count(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count decisions: %w", err)
	}
	if history == nil {
		history = []ledger.Record{}
	}
	path := ledger.Path(history)
	if len(path) == 0 {
		path = []event.Status{e.Status}
	}
	return &EventDetailDTO{EventDTO: toDTO(e), History: history, Path: path, Decisions: n}, nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) ([]EventDTO, error) {
	es, err := u.events.List(ctx, event.Filter{
		Statuses:  in.Statuses,
		CreatedBy: in.CreatedBy,
		Monetary:  in.Monetary,
	})
	if err != nil {
		return nil, err
	}
	return toDTOs(es), nil
}

// AddNotes records the creator's post-event notes once the event has run.
// The ledger is not touched.
func (u *Usecase) AddNotes(ctx context.Context, by actor.Actor, eventID, notes string) (*EventDTO, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, fmt.Errorf("%w: notes are required", event.ErrInvalidInput)
	}
	e, err := u.events.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.CreatedBy != by.ID {
		return nil, event.ErrNotOwner
	}
	if e.Status != event.StatusCompleted && e.Status != event.StatusClosed {
		return nil, event.ErrNotesNotAllowed
	}
	e.PostEventNotes = notes
	e.UpdatedAt = u.now().UTC()
	if err := u.events.Save(ctx, e); err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

func (u *Usecase) Timeline(ctx context.Context, eventID string) (*TimelineDTO, error) {
	e, err := u.events.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &TimelineDTO{EventID: e.EventID, Timeline: u.engine.Timeline(e.Status, e.IsMonetary)}, nil
}

// Stats buckets every event, or just the caller's own when createdBy is set.
func (u *Usecase) Stats(ctx context.Context, createdBy string) (dashboard.Stats, error) {
	es, err := u.events.List(ctx, event.Filter{CreatedBy: createdBy})
	if err != nil {
		return dashboard.Stats{}, err
	}
	return dashboard.Classify(es), nil
}

// Pending lists the events role can act on now, oldest first.
func (u *Usecase) Pending(ctx context.Context, role actor.Role) ([]EventDTO, error) {
	stages := workflow.StatusesFor(role)
	if len(stages) == 0 {
		return []EventDTO{}, nil
	}
	es, err := u.events.List(ctx, event.Filter{Statuses: stages})
	if err != nil {
		return nil, err
	}
	return toDTOs(dashboard.PendingFor(es, role)), nil
}
