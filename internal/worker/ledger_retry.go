package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"eventflow-backend/internal/domain/ledger"
	"eventflow-backend/internal/infrastructure/queue"
	"eventflow-backend/internal/metrics"
)

// JobQueue is the part of queue.LedgerQueue the retry worker consumes.
type JobQueue interface {
	Pop(ctx context.Context, timeout time.Duration) (*queue.Job, error)
	Requeue(ctx context.Context, j queue.Job) error
}

const requeueTimeout = 5 * time.Second

// LedgerRetry drains deferred approval records back into the ledger.
type LedgerRetry struct {
	queue       JobQueue
	ledger      ledger.Repository
	logger      *zap.Logger
	maxAttempts int
	popTimeout  time.Duration
	idleBackoff time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewLedgerRetry(q JobQueue, repo ledger.Repository, logger *zap.Logger, maxAttempts int, popTimeout time.Duration) *LedgerRetry {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if popTimeout <= 0 {
		popTimeout = 5 * time.Second
	}
	return &LedgerRetry{
		queue:       q,
		ledger:      repo,
		logger:      logger,
		maxAttempts: maxAttempts,
		popTimeout:  popTimeout,
		idleBackoff: time.Second,
	}
}

func (w *LedgerRetry) Name() string { return "LedgerRetry" }

func (w *LedgerRetry) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("ledger retry worker is already running")
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.running = true
	go w.loop(ctx, w.done)
	return nil
}

// Stop cancels the loop and waits for the in-flight job to finish.
func (w *LedgerRetry) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.cancel()
	done := w.done
	w.mu.Unlock()
	<-done
}

func (w *LedgerRetry) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for ctx.Err() == nil {
		if _, err := w.ProcessOne(ctx); err != nil && ctx.Err() == nil {
			w.logger.Warn("ledger retry: queue error", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(w.idleBackoff):
			}
		}
	}
}

// ProcessOne handles at most one queued job. It reports whether a job was
// taken off the queue.
func (w *LedgerRetry) ProcessOne(ctx context.Context) (bool, error) {
	j, err := w.queue.Pop(ctx, w.popTimeout)
	if err != nil || j == nil {
		return false, err
	}

	rec := j.Record
	err = w.ledger.Append(ctx, &rec)
	switch {
	case err == nil, errors.Is(err, ledger.ErrDuplicate):
		metrics.LedgerRetries.WithLabelValues("stored").Inc()
		w.logger.Info("ledger retry: record stored",
			zap.String("record_id", rec.RecordID),
			zap.String("event_id", rec.EventID),
			zap.Int("attempts", j.Attempts+1))
		return true, nil
	case ctx.Err() != nil:
		// Shutdown interrupted the append. The job goes back untouched.
		metrics.LedgerRetries.WithLabelValues("requeued").Inc()
		w.logger.Info("ledger retry: interrupted, returning record to queue",
			zap.String("record_id", rec.RecordID),
			zap.Error(err))
		return true, w.requeue(ctx, *j)
	}

	j.Attempts++
	j.LastError = err.Error()
	if j.Attempts >= w.maxAttempts {
		metrics.LedgerRetries.WithLabelValues("dropped").Inc()
		w.logger.Error("ledger retry: giving up on record",
			zap.String("record_id", rec.RecordID),
			zap.String("event_id", rec.EventID),
			zap.Int("attempts", j.Attempts),
			zap.Error(err))
		return true, nil
	}
	metrics.LedgerRetries.WithLabelValues("requeued").Inc()
	w.logger.Warn("ledger retry: append failed, requeueing",
		zap.String("record_id", rec.RecordID),
		zap.Int("attempts", j.Attempts),
		zap.Error(err))
	return true, w.requeue(ctx, *j)
}

// requeue puts a popped job back even when ctx is already cancelled; once
// off the list the job exists nowhere else.
func (w *LedgerRetry) requeue(ctx context.Context, j queue.Job) error {
	rqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), requeueTimeout)
	defer cancel()
	if err := w.queue.Requeue(rqCtx, j); err != nil {
		w.logger.Error("ledger retry: requeue failed, record lost",
			zap.String("record_id", j.Record.RecordID),
			zap.String("event_id", j.Record.EventID),
			zap.Error(err))
		return fmt.Errorf("requeue %s: %w", j.Record.RecordID, err)
	}
	return nil
}
