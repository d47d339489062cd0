// Package metrics defines and registers all custom Prometheus metrics for the
// publishing platform. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "publishing"

// ── Session / authorization metrics ──────────────────────────────────────────

// SessionsResolvedTotal counts per-request identity resolutions.
// Label:
//   - outcome: "authenticated" (validated session) or "anonymous"
var SessionsResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_resolved_total",
		Help:      "Total number of request identity resolutions, by outcome.",
	},
	[]string{"outcome"},
)

// AuthzDenialsTotal counts requests rejected by the authorization guards.
// Label:
//   - reason: "unauthorized" (no verified identity) or "forbidden" (identity
//     lacks the required role or ownership)
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of authorization denials, by reason.",
	},
	[]string{"reason"},
)

// ── Article metrics ──────────────────────────────────────────────────────────

// ArticlesCreatedTotal counts newly created articles.
// Label:
//   - published: "true" when created already published, "false" for drafts
var ArticlesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Total number of articles created, by initial publication state.",
	},
	[]string{"published"},
)

// PublishTogglesTotal counts publication state changes.
// Label:
//   - published: the resulting state ("true"/"false")
var PublishTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "publish_toggles_total",
		Help:      "Total number of publication toggles, by resulting state.",
	},
	[]string{"published"},
)

// ── Subscription metrics ─────────────────────────────────────────────────────

// SubscriptionOpsTotal counts subscription mutations.
// Label:
//   - op: "subscribe" or "unsubscribe"
var SubscriptionOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscription_ops_total",
		Help:      "Total number of subscription mutations, by operation.",
	},
	[]string{"op"},
)

// ── Notification fanout metrics ──────────────────────────────────────────────

// NotificationsFanoutTotal counts processed publish-event fanouts.
var NotificationsFanoutTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_fanout_total",
		Help:      "Total number of publish-event fanouts processed.",
	},
)

// FanoutQueueDepth tracks the current number of publish events waiting in
// each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var FanoutQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "fanout_queue_depth",
		Help:      "Current number of publish events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// FanoutDuration measures how long one publish event takes to fan out.
var FanoutDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fanout_duration_seconds",
		Help:      "Duration of publish-event fanout from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
