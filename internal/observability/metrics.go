package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the prediction service.
type Metrics struct {
	Predictions     *prometheus.CounterVec // labels: label={Low,Moderate,High}
	BadRequests     *prometheus.CounterVec // labels: reason={missing,non_numeric,non_finite,malformed_body}
	PredictDuration prometheus.Histogram

	// Model fit diagnostics, set once at startup.
	ModelRSquared        prometheus.Gauge
	ModelTrainingSamples prometheus.Gauge
	ModelReady           prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uhi",
			Name:      "predictions_total",
			Help:      "Successful predictions by severity label.",
		}, []string{"label"}),
		BadRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uhi",
			Name:      "bad_requests_total",
			Help:      "Rejected prediction requests by validation failure.",
		}, []string{"reason"}),
		PredictDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "uhi",
			Name:      "predict_duration_seconds",
			Help:      "Time spent scoring and advising a single request.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		ModelRSquared: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "uhi",
			Name:      "model_r_squared",
			Help:      "Coefficient of determination of the startup fit on its training set.",
		}),
		ModelTrainingSamples: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "uhi",
			Name:      "model_training_samples",
			Help:      "Number of synthetic samples the model was fit on.",
		}),
		ModelReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "uhi",
			Name:      "model_ready",
			Help:      "1 once a fitted model is serving requests, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.Predictions,
		m.BadRequests,
		m.PredictDuration,
		m.ModelRSquared,
		m.ModelTrainingSamples,
		m.ModelReady,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Predictions:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "uhi", Name: "predictions_total"}, []string{"label"}),
		BadRequests:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "uhi", Name: "bad_requests_total"}, []string{"reason"}),
		PredictDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "uhi", Name: "predict_duration_seconds"}),
		ModelRSquared:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "uhi", Name: "model_r_squared"}),
		ModelTrainingSamples: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "uhi", Name: "model_training_samples"}),
		ModelReady:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "uhi", Name: "model_ready"}),
	}
}
