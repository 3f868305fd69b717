package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventflow_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eventflow_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// Decisions counts workflow decisions, one per attempt, by action and
	// result, where result is "accepted" or an error kind.
	Decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventflow_decisions_total",
		Help: "Workflow decisions by action and result.",
	}, []string{"action", "result"})

	StatusConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventflow_status_conflicts_total",
		Help: "Compare-and-swap conflicts on event status.",
	})

	LedgerDeferred = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventflow_ledger_deferred_total",
		Help: "Approval records handed to the retry queue after a failed append.",
	})

	LedgerUnrecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventflow_ledger_unrecorded_total",
		Help: "Committed decisions whose approval record could not be queued.",
	})

	LedgerRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventflow_ledger_retries_total",
		Help: "Deferred ledger append attempts by result.",
	}, []string{"result"})
)
