package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Evaluation metrics
	evaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screener_evaluations_total",
			Help: "Total number of symbol evaluations by resulting signal",
		},
		[]string{"symbol", "signal"},
	)

	evaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "screener_evaluation_duration_seconds",
			Help:    "Duration of one full batch evaluation",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Market data metrics
	latestClose = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "screener_latest_close",
			Help: "Latest close price per evaluated symbol",
		},
		[]string{"symbol"},
	)

	promiseScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "screener_promise_score",
			Help: "Latest promise score per evaluated symbol",
		},
		[]string{"symbol"},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screener_errors_total",
			Help: "Total number of errors by stage",
		},
		[]string{"stage"},
	)
)

func init() {
	prometheus.MustRegister(evaluationsTotal)
	prometheus.MustRegister(evaluationDuration)
	prometheus.MustRegister(latestClose)
	prometheus.MustRegister(promiseScore)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles the Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordEvaluation records one completed symbol evaluation
func RecordEvaluation(symbol, signal string, score, close float64) {
	evaluationsTotal.WithLabelValues(symbol, signal).Inc()
	promiseScore.WithLabelValues(symbol).Set(score)
	latestClose.WithLabelValues(symbol).Set(close)
}

// ObserveBatchDuration records the wall time of one batch evaluation
func ObserveBatchDuration(d time.Duration) {
	evaluationDuration.Observe(d.Seconds())
}

// RecordError records an error metric for one pipeline stage
func RecordError(stage string) {
	errorsTotal.WithLabelValues(stage).Inc()
}
