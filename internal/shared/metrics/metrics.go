package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	factory = promauto.With(Registry)

	uploadsTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "uploads_total",
		Help: "Total documents uploaded",
	})

	extractionFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "extraction_failures_total",
		Help: "Total failed extractions by reason",
	}, []string{"reason"})

	generations = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "generations_total",
		Help: "Total generated artifacts by kind and mode",
	}, []string{"kind", "mode"})

	generationDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "generation_duration_ms",
		Help:    "Generation duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000},
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IncUploads counts a stored upload.
func IncUploads() {
	uploadsTotal.Inc()
}

// IncExtractionFailure counts a failed extraction by reason class.
func IncExtractionFailure(class string) {
	extractionFailures.WithLabelValues(class).Inc()
}

// IncGeneration counts a generated artifact by kind (chat/summary/quiz) and mode (mock/model/fallback).
func IncGeneration(kind, mode string) {
	generations.WithLabelValues(kind, mode).Inc()
}

// ObserveGenerationDurationMs records a generation duration in milliseconds.
func ObserveGenerationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	generationDuration.Observe(value)
}

// Handler exposes the registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
