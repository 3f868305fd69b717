package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventDomain "eventflow-backend/internal/domain/event"

	"gorm.io/gorm"
)

type EventRepository struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) *EventRepository { return &EventRepository{db: db} }

func (r *EventRepository) Create(ctx context.Context, e *eventDomain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepository) Save(ctx context.Context, e *eventDomain.Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EventRepository) GetByEventID(ctx context.Context, eventID string) (*eventDomain.Event, error) {
	var out eventDomain.Event
	res := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, eventDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

// SetStatus is a compare-and-swap on status: the UPDATE only matches while
// the row still holds expected.
func (r *EventRepository) SetStatus(ctx context.Context, eventID string, expected, next eventDomain.Status) (*eventDomain.Event, error) {
	res := r.db.WithContext(ctx).
		Model(&eventDomain.Event{}).
		Where("event_id = ? AND status = ?", eventID, expected).
		Updates(map[string]any{
			"status":     next,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("set status %s->%s: %w", expected, next, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByEventID(ctx, eventID); err != nil {
			return nil, err
		}
		return nil, eventDomain.ErrConflict
	}
	return r.GetByEventID(ctx, eventID)
}

func (r *EventRepository) List(ctx context.Context, f eventDomain.Filter) ([]eventDomain.Event, error) {
	q := r.db.WithContext(ctx).Model(&eventDomain.Event{})
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.CreatedBy != "" {
		q = q.Where("created_by = ?", f.CreatedBy)
	}
	if f.Monetary != nil {
		q = q.Where("is_monetary = ?", *f.Monetary)
	}
	var out []eventDomain.Event
	if err := q.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
