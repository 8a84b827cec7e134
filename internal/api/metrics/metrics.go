// Package metrics defines and registers all custom Prometheus metrics for
// the identity API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// AuthAttemptsTotal counts authentication operations by outcome.
// Labels:
//   - operation: "sign_up" or "sign_in"
//   - outcome: "success", "duplicate", "invalid_credentials", or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// AdmissionDecisionsTotal counts admission-control decisions.
// Labels:
//   - role: caller role the quota was scoped to ("guest", "user", "admin")
//   - outcome: "allowed", "bot", "shield", "rate_limit", or "error"
var AdmissionDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admission_decisions_total",
		Help:      "Total number of admission-control decisions, by role and outcome.",
	},
	[]string{"role", "outcome"},
)

// AdmissionCheckDuration measures how long a single admission check takes,
// including the round trip to the rate-limit backend.
var AdmissionCheckDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "admission_check_duration_seconds",
		Help:      "Duration of the per-request admission check.",
		Buckets:   prometheus.DefBuckets,
	},
)
