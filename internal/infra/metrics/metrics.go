// Package metrics provides Prometheus metrics for screenlog.
// Counters and gauges for the achievement engine, the library, and the
// HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Achievement Engine ─────────────────────────────────────────────────────

// EngineBuilds counts full achievement rebuilds.
var EngineBuilds = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "screenlog",
	Name:      "engine_builds_total",
	Help:      "Total achievement catalog rebuilds.",
})

// EngineBuildLatency tracks rebuild duration in seconds.
var EngineBuildLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "screenlog",
	Name:      "engine_build_latency_seconds",
	Help:      "Achievement catalog rebuild duration in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
})

// AchievementsUnlocked tracks unlocked levels at the last rebuild.
var AchievementsUnlocked = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "screenlog",
	Name:      "achievements_unlocked_levels",
	Help:      "Unlocked achievement levels as of the last rebuild.",
})

// ─── Library ────────────────────────────────────────────────────────────────

// LibraryEntries tracks the catalog size.
var LibraryEntries = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "screenlog",
	Name:      "library_entries",
	Help:      "Media entries in the library catalog.",
})

// HistoryRecords tracks the watch history size.
var HistoryRecords = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "screenlog",
	Name:      "history_records",
	Help:      "Watch records in the history log.",
})

// WatchesLogged counts watches recorded through the API or CLI.
var WatchesLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "screenlog",
	Name:      "watches_logged_total",
	Help:      "Watch records logged, by media type.",
}, []string{"type"})

// ─── HTTP ───────────────────────────────────────────────────────────────────

// HTTPRequests counts API requests by route and status class.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "screenlog",
	Name:      "http_requests_total",
	Help:      "API requests by route and status class.",
}, []string{"route", "status"})
