package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/MacMatch/internal/store"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "macmatch_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "macmatch_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	recommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "macmatch_recommendations_total",
		Help: "Recommendations composed, by persona.",
	}, []string{"persona"})

	recommendationSimilarity = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "macmatch_recommendation_similarity",
		Help:    "Similarity of the top-ranked Mac.",
		Buckets: []float64{0.5, 0.6, 0.7, 0.8, 0.85, 0.9, 0.95, 1},
	})

	unmatchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "macmatch_unmatched_total",
		Help: "Requests for which no Mac could be ranked.",
	})

	profilesImported = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "macmatch_profiles_imported_total",
		Help: "Profiles stored, by source.",
	}, []string{"source"})

	collectorFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "macmatch_collector_fallbacks_total",
		Help: "Live collector lookups for users without a stored profile, by outcome.",
	}, []string{"outcome"})
)

// NewMetricsRouter serves /health and /metrics. Health reports the profile
// store's reachability.
func NewMetricsRouter(s store.ProfileStore) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
