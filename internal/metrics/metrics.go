// Package metrics exposes process-wide intake counters on the default
// Prometheus registry; the router serves them at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intake_orders_completed_total",
		Help: "Orders that reached a final quote.",
	})

	DiscountsGranted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intake_discounts_granted_total",
		Help: "Sessions where a referral matched and the loyalty discount applied.",
	})

	RateFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intake_rate_fetch_failures_total",
		Help: "Settlement-rate fetches that failed after retries.",
	})

	LedgerLookupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intake_ledger_lookup_failures_total",
		Help: "Referral lookups that errored and were treated as not found.",
	})
)
