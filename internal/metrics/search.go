package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creatorsearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests by strategy",
		},
		[]string{"strategy", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "creatorsearch",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search pipeline duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"strategy"},
	)

	AnalysisRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creatorsearch",
			Name:      "query_analysis_total",
			Help:      "Query analysis outcomes by mode (llm or fallback)",
		},
		[]string{"mode", "status"},
	)

	EnrichmentDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "creatorsearch",
			Name:      "enrichment_dropped_total",
			Help:      "Creator IDs dropped during enrichment because they failed to resolve",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search pipeline metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(AnalysisRequestsTotal)
	prometheus.MustRegister(EnrichmentDroppedTotal)
	searchMetricsRegistered = true
}
