package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path.
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "olympiad_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "olympiad_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	AttemptsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "olympiad_attempts_started_total",
		Help: "Attempts created, including retries and reclaimed stale runs",
	})

	AttemptsFinished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "olympiad_attempts_finished_total",
		Help: "Attempts finished with a COMPLETED verdict",
	})

	AttemptsDisqualified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "olympiad_attempts_disqualified_total",
		Help: "Attempts finished with a DISQUALIFIED verdict",
	})

	// RewardsGranted counts individual prize grants by prize type.
	RewardsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "olympiad_rewards_granted_total",
			Help: "Prize grants performed by reward distribution",
		},
		[]string{"type"},
	)
)
