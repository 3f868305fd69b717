package gormrepo

import (
	"context"
	"errors"

	ledgerDomain "eventflow-backend/internal/domain/ledger"

	"gorm.io/gorm"
)

const appendSavepoint = "ledger_append"

// LedgerRepository is insert-only: it has no update or delete path.
type LedgerRepository struct {
	db *gorm.DB
	// inTx guards each append with a savepoint so a failed insert does not
	// poison the surrounding transaction.
	inTx bool
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository { return &LedgerRepository{db: db} }

func (r *LedgerRepository) Append(ctx context.Context, rec *ledgerDomain.Record) error {
	db := r.db.WithContext(ctx)
	if !r.inTx {
		return translateLedgerErr(db.Create(rec).Error)
	}
	if err := db.SavePoint(appendSavepoint).Error; err != nil {
		return err
	}
	if err := db.Create(rec).Error; err != nil {
		if rbErr := db.RollbackTo(appendSavepoint).Error; rbErr != nil {
			return errors.Join(translateLedgerErr(err), rbErr)
		}
		return translateLedgerErr(err)
	}
	return nil
}

func (r *LedgerRepository) History(ctx context.Context, eventID string) ([]ledgerDomain.Record, error) {
	var out []ledgerDomain.Record
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *LedgerRepository) Count(ctx context.Context, eventID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&ledgerDomain.Record{}).Where("event_id = ?", eventID).Count(&n).Error
	return n, err
}

func translateLedgerErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ledgerDomain.ErrDuplicate
	}
	return err
}
