package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eventflow-backend/internal/domain/ledger"
)

const DefaultLedgerKey = "ledger:retry"

// Job is one deferred ledger append.
type Job struct {
	Record     ledger.Record `json:"record"`
	Attempts   int           `json:"attempts"`
	EnqueuedAt time.Time     `json:"enqueued_at"`
	LastError  string        `json:"last_error,omitempty"`
}

// LedgerQueue is a FIFO of approval records whose append failed after the
// status change committed. LPUSH in, BRPOP out.
type LedgerQueue struct {
	rdb *redis.Client
	key string
}

func NewLedgerQueue(rdb *redis.Client, key string) *LedgerQueue {
	if key == "" {
		key = DefaultLedgerKey
	}
	return &LedgerQueue{rdb: rdb, key: key}
}

func (q *LedgerQueue) Key() string { return q.key }

// Defer enqueues rec for asynchronous append.
func (q *LedgerQueue) Defer(ctx context.Context, rec *ledger.Record) error {
	if rec == nil {
		return errors.New("queue: nil record")
	}
	return q.push(ctx, Job{Record: *rec, EnqueuedAt: time.Now().UTC()})
}

// Requeue puts a job back after a failed attempt.
func (q *LedgerQueue) Requeue(ctx context.Context, j Job) error {
	j.EnqueuedAt = time.Now().UTC()
	return q.push(ctx, j)
}

// Pop blocks up to timeout. It returns (nil, nil) when nothing arrived.
func (q *LedgerQueue) Pop(ctx context.Context, timeout time.Duration) (*Job, error) {
	res, err := q.rdb.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// res = [key, value]
	if len(res) != 2 {
		return nil, fmt.Errorf("queue: unexpected BRPOP reply %v", res)
	}
	var j Job
	if err := json.Unmarshal([]byte(res[1]), &j); err != nil {
		return nil, fmt.Errorf("queue: decode job: %w", err)
	}
	return &j, nil
}

func (q *LedgerQueue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, q.key).Result()
}

func (q *LedgerQueue) push(ctx context.Context, j Job) error {
	payload, err := json.Marshal(j)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.key, payload).Err()
}
