// Package metrics defines and registers all custom Prometheus metrics for the
// grievance portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init via
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "grievance"

// ── Authentication ───────────────────────────────────────────────────────────

// OTPRequestsTotal counts one-time code requests.
// Label:
//   - result: "issued" or "invalid_mobile"
var OTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_requests_total",
		Help:      "Total number of one-time code requests, by result.",
	},
	[]string{"result"},
)

// OTPVerificationsTotal counts code verification attempts.
// Label:
//   - result: "success", "mismatch", "expired", "superseded", "replayed"
var OTPVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of one-time code verification attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts established sessions.
// Label:
//   - role: "CITIZEN" or "GRO"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of sessions established, by role.",
	},
	[]string{"role"},
)

// ── Grievances ───────────────────────────────────────────────────────────────

// GrievancesCreatedTotal counts newly filed grievances.
// Label:
//   - category: the grievance category (e.g. "Water Supply")
var GrievancesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grievances_created_total",
		Help:      "Total number of grievances filed, by category.",
	},
	[]string{"category"},
)

// RepliesTotal counts replies appended to grievance threads.
var RepliesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "replies_total",
		Help:      "Total number of replies appended to grievances.",
	},
)

// OfficerActionsTotal counts Action Taken Reports.
// Label:
//   - status: the status requested by the officer
var OfficerActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "officer_actions_total",
		Help:      "Total number of officer action reports submitted, by requested status.",
	},
	[]string{"status"},
)

// ── Persistence ──────────────────────────────────────────────────────────────

// PersistenceParseErrorsTotal counts stored values that failed to decode and
// were treated as empty.
// Label:
//   - kind: "identity" or "grievances"
var PersistenceParseErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "persistence_parse_errors_total",
		Help:      "Total number of unparseable stored values recovered as empty.",
	},
	[]string{"kind"},
)

// StoreConflictsTotal counts optimistic concurrency conflicts on grievance lists.
var StoreConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_conflicts_total",
		Help:      "Total number of compare-and-swap conflicts while updating grievance lists.",
	},
)

// ── Notifications ────────────────────────────────────────────────────────────

// NotificationsTotal counts notification deliveries.
// Label:
//   - result: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of citizen notifications delivered, by result.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks pending notifications per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
