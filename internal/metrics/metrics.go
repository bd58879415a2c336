// Package metrics defines the Prometheus collectors for the insights engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion metrics
var (
	// MessagesIngested counts messages accepted into the session log.
	MessagesIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_ingested_total",
			Help: "Total chat messages accepted into the session log",
		},
	)

	// MessagesDropped counts malformed messages dropped from batches.
	MessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_dropped_total",
			Help: "Total malformed chat messages dropped from batches",
		},
	)

	// BatchesProcessed counts batches by outcome.
	BatchesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_batches_processed_total",
			Help: "Total message batches processed by status",
		},
		[]string{"status"},
	)
)

// Refresh cycle metrics
var (
	// RefreshCycles counts full snapshot recomputations.
	RefreshCycles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "insight_refresh_cycles_total",
			Help: "Total insight snapshot refresh cycles",
		},
	)

	// RefreshDuration tracks refresh cycle latency in seconds.
	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "insight_refresh_duration_seconds",
			Help:    "Insight refresh cycle duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// ActivePolls tracks the current active poll count.
	ActivePolls = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "insight_active_polls",
			Help: "Current number of active polls",
		},
	)

	// ActiveHighlights tracks the current active highlight count.
	ActiveHighlights = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "insight_active_highlights",
			Help: "Current number of active highlights",
		},
	)

	// Votes counts poll vote attempts by outcome.
	Votes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poll_votes_total",
			Help: "Total poll vote attempts by outcome",
		},
		[]string{"status"},
	)
)

// Generator collaborator metrics
var (
	// GeneratorCalls counts text-generation calls by facet and status.
	GeneratorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generator_calls_total",
			Help: "Text-generation collaborator calls by facet and status",
		},
		[]string{"facet", "status"},
	)

	// CircuitBreakerState tracks the generator circuit breaker state
	// (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "generator_circuit_breaker_state",
			Help: "Generator circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

// Overlay metrics
var (
	// OverlayClients tracks connected websocket overlay clients.
	OverlayClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "overlay_connected_clients",
			Help: "Current number of connected overlay websocket clients",
		},
	)
)
