// Package metrics defines and registers all custom Prometheus metrics for
// the loan-application API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the registry is exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "loans"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successfully created accounts.
// Label:
//   - role: "member" (self-service) or "admin" (created by an administrator)
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "ok", "not_found", "bad_password", or "banned"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// BansTotal counts ban-toggle operations.
// Label:
//   - action: "ban" or "unban"
var BansTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bans_total",
		Help:      "Total number of ban toggles, by resulting action.",
	},
	[]string{"action"},
)

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsSubmittedTotal counts newly submitted loan applications.
var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of loan applications submitted.",
	},
)

// ApplicationsDeletedTotal counts pending applications withdrawn by their owner.
var ApplicationsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_deleted_total",
		Help:      "Total number of pending applications deleted by their owner.",
	},
)

// ApplicationStatusUpdatesTotal counts documents transitioned by admin
// status updates.
// Label:
//   - status: the target status ("approved", "pending", "rejected")
var ApplicationStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_status_updates_total",
		Help:      "Total number of applications transitioned out of pending, by target status.",
	},
	[]string{"status"},
)

// ── Access log metrics ────────────────────────────────────────────────────────

// AccessLogEventsTotal counts recorded access events.
// Label:
//   - type: "login" or "logout"
var AccessLogEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_log_events_total",
		Help:      "Total number of access log events recorded, by type.",
	},
	[]string{"type"},
)
