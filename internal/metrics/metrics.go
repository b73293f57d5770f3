package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all worklog metrics
const namespace = "worklog"

// Registry is the global Prometheus registry for all metrics
var Registry = prometheus.NewRegistry()

// AppInfo is a gauge that exposes application version information as labels
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always set to 1, version info in labels)",
	},
	[]string{"version", "commit", "build_date"},
)

// EntriesListed counts entry listing queries served, by outcome.
var EntriesListed = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_listed_total",
		Help:      "Total entry listing queries served",
	},
	[]string{"outcome"},
)

// SummaryEmailsQueued counts summary email jobs accepted for dispatch.
var SummaryEmailsQueued = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_emails_queued_total",
		Help:      "Total summary email jobs enqueued",
	},
)

// SummaryEmailsSent counts summary emails delivered by the worker.
var SummaryEmailsSent = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_emails_sent_total",
		Help:      "Total summary emails delivered",
	},
)

// SummaryEmailsFailed counts summary email deliveries that errored.
var SummaryEmailsFailed = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_emails_failed_total",
		Help:      "Total summary email deliveries that failed",
	},
)

// Init sets application info metrics at startup.
func Init(version, commit, buildDate string) {
	AppInfo.WithLabelValues(version, commit, buildDate).Set(1)
}
