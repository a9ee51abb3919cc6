// Package metrics defines and registers all custom Prometheus metrics for the
// marketplace API. It is the single source of truth for metric names, labels,
// and help strings; everything registers with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts successful registrations.
// Label:
//   - role: "BUYER", "REALTOR", or "ADMIN"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups, by requested role.",
	},
	[]string{"role"},
)

// SigninFailuresTotal counts rejected signin attempts. Unknown email and
// wrong password are a single bucket on purpose.
var SigninFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signin_failures_total",
		Help:      "Total number of signin attempts rejected with invalid credentials.",
	},
)

// AuthDeniedTotal counts guard denials.
// Label:
//   - reason: "missing_token", "invalid_token", "unknown_subject", "forbidden"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests denied by the auth guard, by reason.",
	},
	[]string{"reason"},
)

// ProductKeysIssuedTotal counts product keys generated for elevated-role signup.
// Label:
//   - role: requested role the key is bound to
var ProductKeysIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_keys_issued_total",
		Help:      "Total number of product keys generated, by role.",
	},
	[]string{"role"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// HomesCreatedTotal counts newly created listings.
// Label:
//   - property_type: "RESIDENTIAL" or "CONDO"
var HomesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "homes_created_total",
		Help:      "Total number of home listings created, by property type.",
	},
	[]string{"property_type"},
)

// ── Inquiry metrics ───────────────────────────────────────────────────────────

// InquiriesNotifiedTotal counts realtor notifications processed successfully.
var InquiriesNotifiedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inquiries_notified_total",
		Help:      "Total number of inquiry notifications delivered to realtors.",
	},
)

// InquiryNotifyErrorsTotal counts notification failures.
// Label:
//   - reason: short description of the failure (e.g. "mark_failed")
var InquiryNotifyErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inquiry_notify_errors_total",
		Help:      "Total number of inquiry notifications that failed processing.",
	},
	[]string{"reason"},
)

// InquiryQueueDepth tracks notifications waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var InquiryQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inquiry_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
