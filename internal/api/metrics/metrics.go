// Package metrics defines and registers all custom Prometheus metrics for the
// gym management API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at package init via
// promauto; HTTP-level metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gym"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "inactive", or "not_found"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts issued tokens.
// Label:
//   - kind: "access" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by kind.",
	},
	[]string{"kind"},
)

// TokenValidationsTotal counts gate and /auth/validate decisions.
// Label:
//   - result: "valid" or "invalid"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of token validation decisions, by result.",
	},
	[]string{"result"},
)

// CredentialsMigratedTotal counts credentials re-hashed by the migration batch.
var CredentialsMigratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credentials_migrated_total",
		Help:      "Total number of stored credentials re-hashed by the migration endpoint.",
	},
)

// AuditEventsDroppedTotal counts auth events dropped because an audit worker
// shard buffer was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of auth audit events dropped due to full worker queues.",
	},
)
