package approval

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"eventflow-backend/internal/domain/event"
	"eventflow-backend/internal/domain/ledger"
	"eventflow-backend/internal/domain/uow"
	"eventflow-backend/internal/domain/workflow"
	"eventflow-backend/internal/metrics"
)

// DeferredLedger accepts approval records whose in-transaction append failed.
type DeferredLedger interface {
	Defer(ctx context.Context, rec *ledger.Record) error
}

type Options struct {
	// MaxRetries caps re-runs of the whole read-decide-write unit on Conflict.
	MaxRetries int
	// Backoff is multiplied by the attempt number between retries.
	Backoff time.Duration
	Logger  *zap.Logger
	Now     func() time.Time
}

type Usecase struct {
	uow      uow.UnitOfWork
	engine   workflow.Engine
	deferred DeferredLedger

	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewUsecase: deferred may be nil, in which case a failed ledger append fails
// the whole decision.
func NewUsecase(tx uow.UnitOfWork, engine workflow.Engine, deferred DeferredLedger, opts Options) *Usecase {
	u := &Usecase{
		uow:        tx,
		engine:     engine,
		deferred:   deferred,
		maxRetries: opts.MaxRetries,
		backoff:    opts.Backoff,
		logger:     opts.Logger,
		now:        opts.Now,
	}
	if u.maxRetries < 0 {
		u.maxRetries = 0
	}
	if u.logger == nil {
		u.logger = zap.NewNop()
	}
	if u.now == nil {
		u.now = time.Now
	}
	return u
}

// Decide applies an approve/reject action. The read, decision, status CAS and
// ledger append form one unit; on Conflict the unit is re-run from the read.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*DecisionDTO, error) {
	if u.uow == nil {
		return nil, errors.New("approval usecase: no unit of work configured")
	}
	for attempt := 0; ; attempt++ {
		dto, err := u.decideOnce(ctx, in)
		metrics.Decisions.WithLabelValues(string(in.Action), resultLabel(err)).Inc()
		if !errors.Is(err, event.ErrConflict) {
			return dto, err
		}
		metrics.StatusConflicts.Inc()
		if attempt >= u.maxRetries {
			u.logger.Warn("decision lost the status race, retries exhausted",
				zap.String("event_id", in.EventID), zap.Int("attempts", attempt+1))
			return nil, err
		}
		u.logger.Info("decision lost the status race, retrying",
			zap.String("event_id", in.EventID), zap.Int("attempt", attempt+1))
		if err := sleep(ctx, u.backoff*time.Duration(attempt+1)); err != nil {
			return nil, err
		}
	}
}

func (u *Usecase) decideOnce(ctx context.Context, in DecideInput) (*DecisionDTO, error) {
	var (
		dto     *DecisionDTO
		pending *ledger.Record
	)
	err := u.uow.WithinEventTx(ctx, in.EventID, func(r uow.Repos, e *event.Event) error {
		d, err := u.engine.Decide(e, in.Actor.Role, in.Action, in.Comments)
		if err != nil {
			return err
		}

		updated, err := r.Events.SetStatus(ctx, e.EventID, d.From, d.Next)
		if err != nil {
			return err
		}

		rec, err := ledger.NewRecord(ledger.Entry{
			EventID:  e.EventID,
			Approver: in.Actor,
			Outcome:  outcomeFor(d.Action),
			Comments: in.Comments,
			From:     d.From,
			To:       d.Next,
		}, u.now())
		if err != nil {
			return err
		}

		if err := r.Ledger.Append(ctx, rec); err != nil {
			if u.deferred == nil {
				return err
			}
			// keep the status change; the record goes to the retry queue
			u.logger.Warn("ledger append failed, deferring",
				zap.String("event_id", e.EventID),
				zap.String("record_id", rec.RecordID),
				zap.Error(err))
			pending = rec
		}

		dto = &DecisionDTO{
			EventID:    updated.EventID,
			FromStatus: string(d.From),
			Status:     string(updated.Status),
			Outcome:    string(rec.Outcome),
			RecordID:   rec.RecordID,
			DecidedAt:  rec.CreatedAt,
			Ledger:     LedgerRecorded,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if pending != nil {
		dto.Ledger = LedgerDeferred
		metrics.LedgerDeferred.Inc()
		if err := u.deferred.Defer(context.WithoutCancel(ctx), pending); err != nil {
			dto.Ledger = LedgerUnrecorded
			metrics.LedgerUnrecorded.Inc()
			u.logger.Error("could not queue approval record",
				zap.String("event_id", pending.EventID),
				zap.String("record_id", pending.RecordID),
				zap.String("approver_id", pending.ApproverID),
				zap.String("outcome", string(pending.Outcome)),
				zap.String("to_status", string(pending.ToStatus)),
				zap.Error(err))
		}
	}
	return dto, nil
}

func outcomeFor(a workflow.Action) ledger.Outcome {
	if a == workflow.ActionReject {
		return ledger.OutcomeRejected
	}
	return ledger.OutcomeApproved
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, workflow.ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, workflow.ErrMissingReason):
		return "missing_reason"
	case errors.Is(err, workflow.ErrTerminalState):
		return "terminal_state"
	case errors.Is(err, event.ErrConflict):
		return "conflict"
	case errors.Is(err, event.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
