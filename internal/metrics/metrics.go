// Package metrics defines and registers the Prometheus metrics of the
// marketplace client. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts committed session transitions.
// Labels:
//   - state: resulting state ("anonymous", "authenticated")
//   - cause: what drove it ("startup", "verify", "login", "register", "logout")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of committed session transitions.",
	},
	[]string{"state", "cause"},
)

// StaleVerificationsTotal counts verification results discarded because the
// credential changed while the request was in flight.
var StaleVerificationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_verifications_total",
		Help:      "Total number of identity verification results discarded as stale.",
	},
)

// VerificationDuration measures the identity check performed at startup.
// Label:
//   - result: "ok" or "rejected"
var VerificationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "verification_duration_seconds",
		Help:      "Duration of the startup identity verification request.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Auth call metrics ─────────────────────────────────────────────────────────

// AuthRequestsTotal counts login and registration attempts.
// Labels:
//   - operation: "login" or "register"
//   - result: "ok", "invalid", "rejected", "server", "transport", "malformed", "store"
var AuthRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_requests_total",
		Help:      "Total number of login and registration attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// CredentialStoreErrorsTotal counts failed credential store operations.
// Label:
//   - op: "get", "set", "clear"
var CredentialStoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_store_errors_total",
		Help:      "Total number of credential store operations that failed.",
	},
	[]string{"op"},
)
