package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BidsAdmitted counts successfully committed bids by admission path.
	BidsAdmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_bids_admitted_total",
		Help: "Committed bids by admission path (place, auto_raise, amend).",
	}, []string{"path"})

	// BidsRejected counts business rejections by reason.
	BidsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_bids_rejected_total",
		Help: "Rejected bids by reason.",
	}, []string{"reason"})

	// AppendConflicts counts optimistic-append retries caused by a stale
	// listing version.
	AppendConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auction_append_conflicts_total",
		Help: "Ledger appends retried because the listing version moved.",
	})

	// NotifyFailures counts best-effort notification deliveries that failed.
	NotifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auction_notify_failures_total",
		Help: "Accepted-bid notifications that could not be delivered.",
	})
)
