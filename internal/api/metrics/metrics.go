// Package metrics defines and registers all custom Prometheus metrics of the
// back-office API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// ── Document metrics ──────────────────────────────────────────────────────────

// DocumentsCreatedTotal counts newly created documents.
// Label:
//   - kind: "invoice", "proforma_invoice" or "quotation"
var DocumentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_created_total",
		Help:      "Total number of documents created, by kind.",
	},
	[]string{"kind"},
)

// NumberAllocationRetriesTotal counts creates that collided on the unique
// number index and had to allocate again.
// Label:
//   - prefix: "INV", "PI" or "QT"
var NumberAllocationRetriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "number_allocation_retries_total",
		Help:      "Total number of document number reallocations after a collision.",
	},
	[]string{"prefix"},
)

// ── Transition metrics ────────────────────────────────────────────────────────

// TransitionsTotal counts applied status transitions.
// Labels:
//   - kind: the document kind
//   - to: the new status (e.g. "paid")
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of document status transitions applied.",
	},
	[]string{"kind", "to"},
)

// TransitionErrorsTotal counts transitions that failed.
// Label:
//   - reason: "invalid_transition", "not_found", "concurrent_update" or "update_failed"
var TransitionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transition_errors_total",
		Help:      "Total number of document status transitions that failed.",
	},
	[]string{"reason"},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// PermissionDeniedTotal counts requests rejected by the permission gate.
var PermissionDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "permission_denied_total",
		Help:      "Total number of permission checks that denied access.",
	},
	[]string{"resource", "action"},
)

// ── Batch pipeline metrics ────────────────────────────────────────────────────

// EventsQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of transition events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventProcessingDuration measures how long a single transition event takes
// from dequeue to persistence.
// Label:
//   - result: "ok" or "error"
var EventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_processing_duration_seconds",
		Help:      "Duration of transition event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// OverdueSweepsTotal counts invoices moved to overdue by the sweeper.
var OverdueSweepsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "overdue_marked_total",
		Help:      "Total number of invoices marked overdue by the background sweeper.",
	},
)
