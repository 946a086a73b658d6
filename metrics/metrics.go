package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RepliesTotal counts chat replies by the fallback tier that produced them.
	RepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindful_chat",
			Name:      "replies_total",
			Help:      "Total chat replies by fallback tier",
		},
		[]string{"tier"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mindful_chat",
			Name:      "generation_duration_seconds",
			Help:      "Generation backend call duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"provider", "outcome"},
	)

	PersistenceErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindful_chat",
			Name:      "persistence_errors_total",
			Help:      "Session store operations that failed after retries",
		},
		[]string{"operation"},
	)

	EventPublishFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mindful_chat",
			Name:      "event_publish_failures_total",
			Help:      "Chat turn events that could not be published",
		},
	)
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
