package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas del matcher. Se registran en el registry default de prometheus
// y se exponen en /metrics.
var (
	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petmatcher_match_requests_total",
			Help: "Total match requests by species and outcome",
		},
		[]string{"species", "outcome"}, // outcome: ok, client_error, server_error
	)

	MatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petmatcher_match_duration_seconds",
			Help:    "Duration of a full match computation (load + score + rank)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"species"},
	)

	PopulationSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "petmatcher_population_size",
			Help: "Size of the last population loaded per species",
		},
		[]string{"species"},
	)

	PopulationLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petmatcher_population_load_errors_total",
			Help: "Population load failures by species",
		},
		[]string{"species"},
	)

	ScalerReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petmatcher_scaler_reloads_total",
			Help: "Scaler snapshot reloads by result",
		},
		[]string{"result"}, // ok, error
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petmatcher_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

const (
	OutcomeOK          = "ok"
	OutcomeClientError = "client_error"
	OutcomeServerError = "server_error"
)
