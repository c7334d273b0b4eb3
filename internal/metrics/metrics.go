package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchAttemptsTotal tracks outbound HTTP attempts per endpoint and outcome
	FetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jokecast_fetch_attempts_total",
			Help: "Total number of outbound HTTP attempts",
		},
		[]string{"endpoint", "outcome"},
	)

	// FetchRetriesTotal tracks backoff retries per endpoint
	FetchRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jokecast_fetch_retries_total",
			Help: "Total number of retries after a transient failure",
		},
		[]string{"endpoint"},
	)

	// FetchErrorsTotal tracks failed calls by error class
	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jokecast_fetch_errors_total",
			Help: "Total number of failed outbound calls",
		},
		[]string{"endpoint", "error_type"},
	)

	// FetchLatency tracks call latency including retries
	FetchLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jokecast_fetch_latency_seconds",
			Help:    "Outbound call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// JokeFallbacksTotal counts switches to the secondary joke provider
	JokeFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jokecast_joke_fallbacks_total",
			Help: "Total number of fallbacks to the secondary joke provider",
		},
		[]string{"primary", "secondary"},
	)

	// LoadsTotal counts widget loads per kind and result
	LoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jokecast_loads_total",
			Help: "Total number of joke and weather loads",
		},
		[]string{"kind", "result"},
	)

	// RatingsSavedTotal counts saved joke reports per score
	RatingsSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jokecast_ratings_saved_total",
			Help: "Total number of joke ratings saved",
		},
		[]string{"score"},
	)
)
