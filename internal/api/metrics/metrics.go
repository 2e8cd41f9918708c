// Package metrics defines and registers the custom Prometheus metrics of the
// admin API. It is the single source of truth for metric names, labels, and
// help strings.
//
// All metrics register with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - role: the login route's role (e.g. "client")
//   - result: "success", "invalid_credentials", "inactive", "not_approved" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// AuthRejectionsTotal counts requests turned away by the auth gates.
// Label:
//   - reason: "missing_token", "invalid_token", "account_not_found",
//     "inactive", "forbidden" or "error"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// ApprovalsTotal counts approval state transitions.
// Labels:
//   - action: "approve" or "reject"
//   - type: "admin" or "user"
var ApprovalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approvals_total",
		Help:      "Total number of login approval transitions.",
	},
	[]string{"action", "type"},
)

// AccountsCreatedTotal counts newly created accounts.
// Label:
//   - kind: "admin", "client" or "user"
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created, by kind.",
	},
	[]string{"kind"},
)
