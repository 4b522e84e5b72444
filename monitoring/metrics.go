// Package monitoring exposes the service's Prometheus metrics.
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prediction outcomes.
const (
	OutcomePredicted = "predicted"
	OutcomeWarning   = "warning"
	OutcomeRejected  = "rejected"
)

// Collector holds all Prometheus metrics.
type Collector struct {
	PredictionsTotal *prometheus.CounterVec
	PredictedValue   prometheus.Histogram
	CacheLookups     *prometheus.CounterVec
	ModelParameter   *prometheus.GaugeVec

	RequestsTotal        *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	WebSocketConnections prometheus.Gauge
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		PredictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lpa_predictions_total",
				Help: "Total number of prediction requests by outcome",
			},
			[]string{"outcome"}, // predicted, warning, rejected
		),
		PredictedValue: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lpa_predicted_value",
				Help:    "Distribution of predicted LPA values",
				Buckets: []float64{0, 2, 4, 6, 8, 10, 15, 20, 30, 50},
			},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lpa_prediction_cache_total",
				Help: "Prediction cache lookups by result",
			},
			[]string{"result"}, // hit, miss
		),
		ModelParameter: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lpa_model_parameter",
				Help: "Parameters of the loaded regression model",
			},
			[]string{"term"}, // slope, intercept
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lpa_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lpa_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		WebSocketConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "lpa_websocket_connections",
				Help: "Number of open prediction WebSocket connections",
			},
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.PredictionsTotal.Describe(ch)
	c.PredictedValue.Describe(ch)
	c.CacheLookups.Describe(ch)
	c.ModelParameter.Describe(ch)
	c.RequestsTotal.Describe(ch)
	c.RequestDuration.Describe(ch)
	c.WebSocketConnections.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.PredictionsTotal.Collect(ch)
	c.PredictedValue.Collect(ch)
	c.CacheLookups.Collect(ch)
	c.ModelParameter.Collect(ch)
	c.RequestsTotal.Collect(ch)
	c.RequestDuration.Collect(ch)
	c.WebSocketConnections.Collect(ch)
}

// RecordModel publishes the loaded model's parameters.
func (c *Collector) RecordModel(slope, intercept float64) {
	c.ModelParameter.WithLabelValues("slope").Set(slope)
	c.ModelParameter.WithLabelValues("intercept").Set(intercept)
}

// RecordPrediction counts a successful prediction and observes its value.
func (c *Collector) RecordPrediction(value float64) {
	c.PredictionsTotal.WithLabelValues(OutcomePredicted).Inc()
	c.PredictedValue.Observe(value)
}

// RecordOutcome counts a request that produced no prediction.
func (c *Collector) RecordOutcome(outcome string) {
	c.PredictionsTotal.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup counts a prediction cache hit or miss.
func (c *Collector) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.CacheLookups.WithLabelValues(result).Inc()
}

// RecordRequest records a completed HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
