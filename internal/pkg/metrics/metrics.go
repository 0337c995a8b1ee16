// Package metrics defines and registers the custom Prometheus metrics of the
// stock admin API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry on import via
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stockadmin"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid", "not_found", "bad_password", "throttled", "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal counts password reset flow steps.
// Label:
//   - step: "requested", "completed", "rejected"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset requests and completions.",
	},
	[]string{"step"},
)

// ── Resources ─────────────────────────────────────────────────────────────────

// AdminsCreatedTotal counts admins created through the API.
var AdminsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admins_created_total",
		Help:      "Total number of admins created.",
	},
)

// ResourcesDeletedTotal counts deletions, cascaded documents included.
// Label:
//   - resource: "admin", "user", "account", "stock", "item"
var ResourcesDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_deleted_total",
		Help:      "Total number of documents deleted, by resource type.",
	},
	[]string{"resource"},
)

// ── Audit stream ──────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events by delivery result.
// Label:
//   - result: "published", "failed", "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events, by delivery result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
