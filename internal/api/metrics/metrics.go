// Package metrics defines and registers all custom Prometheus metrics for the
// time-tracking API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timetrack"

// RequestsTotal counts API requests by entity and verb.
// Labels:
//   - entity: "users", "time_entries", "contractor_submissions"
//   - verb: "list", "create", "update", "delete"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of API requests, by entity and verb.",
	},
	[]string{"entity", "verb"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// EntriesOpenedTotal counts time entries opened (clock-ins).
var EntriesOpenedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_opened_total",
		Help:      "Total number of time entries opened.",
	},
)

// EntriesClosedTotal counts time entries closed (clock-outs).
var EntriesClosedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_closed_total",
		Help:      "Total number of time entries closed.",
	},
)

// RequestDuration measures request handling time per entity.
// Label:
//   - entity: "users", "time_entries", "contractor_submissions", "auth"
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of API request handling, by entity.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"entity"},
)
