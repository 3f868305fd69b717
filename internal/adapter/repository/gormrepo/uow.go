package gormrepo

import (
	"context"

	"eventflow-backend/internal/domain/event"
	"eventflow-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinEventTx(ctx context.Context, eventID string, fn func(r uow.Repos, e *event.Event) error) error {
	return u.WithinTx(ctx, func(r uow.Repos) error {
		e, err := r.Events.GetByEventID(ctx, eventID)
		if err != nil {
			return err
		}
		return fn(r, e)
	})
}

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Events: &EventRepository{db: tx},
		Ledger: &LedgerRepository{db: tx, inTx: true},
	}
}
