// Package metrics exposes Prometheus collectors for the pledge and
// settlement engines. Collectors register on the default registry and are
// served from /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PledgesTotal counts pledge attempts by result: success, replayed, or one of
// the rejection reasons.
var PledgesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "globalfund",
	Name:      "pledges_total",
	Help:      "Pledge attempts by result.",
}, []string{"result"})

// PledgedAmount totals the minor units moved into escrow by successful pledges.
var PledgedAmount = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "globalfund",
	Name:      "pledged_amount_total",
	Help:      "Total amount pledged, in minor units.",
})

// CampaignsSettled counts campaigns settled by the expiry scan, by outcome.
var CampaignsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "globalfund",
	Name:      "campaigns_settled_total",
	Help:      "Campaigns settled by the expiry scan, by outcome.",
}, []string{"outcome"})

// RefundsTotal counts individual pledges refunded by the expiry scan.
var RefundsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "globalfund",
	Name:      "refunds_total",
	Help:      "Pledges refunded by the expiry scan.",
})

// ScanDuration observes expiry scan wall time.
var ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "globalfund",
	Name:      "expiry_scan_duration_seconds",
	Help:      "Duration of a full expiry scan.",
	Buckets:   prometheus.DefBuckets,
})

// ScanErrors counts campaigns whose settlement failed during a scan.
var ScanErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "globalfund",
	Name:      "expiry_scan_errors_total",
	Help:      "Campaign settlements that failed during expiry scans.",
})
