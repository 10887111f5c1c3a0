// Package metrics defines all custom Prometheus metrics for the kitchen-app
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "household"

// InvitationsAcceptedTotal counts committed invitation acceptances.
// Label:
//   - new_user: "true" when the acceptance created the user record lazily
var InvitationsAcceptedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invitations_accepted_total",
		Help:      "Total number of invitation acceptances committed.",
	},
	[]string{"new_user"},
)

// AcceptanceErrorsTotal counts failed acceptance requests.
// Label:
//   - reason: "invitation_not_found", "household_not_found",
//     "already_processed", "storage_unavailable", or "internal"
var AcceptanceErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "acceptance_errors_total",
		Help:      "Total number of acceptance requests that failed, by reason.",
	},
	[]string{"reason"},
)

// AcceptanceDuration measures how long an acceptance request takes end-to-end,
// including any internal transaction retries.
// Label:
//   - outcome: "accepted" or "error"
var AcceptanceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "acceptance_duration_seconds",
		Help:      "Duration of acceptance requests from receipt to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)
