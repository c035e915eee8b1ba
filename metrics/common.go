// Package metrics defines prometheus primitives on a caller supplied registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the basic namespace where all metrics are defined under.
	Namespace = "vtx"
)

// NewCounter creates a Counter metrics under the global namespace on reg.
func NewCounter(reg prometheus.Registerer, name, subsystem, help string, labels []string) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help}, labels)
}

// NewGauge creates a Gauge metrics under the global namespace on reg.
func NewGauge(reg prometheus.Registerer, name, subsystem, help string, labels []string) *prometheus.GaugeVec {
	return promauto.With(reg).NewGaugeVec(
		prometheus.GaugeOpts{Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help}, labels)
}

// NewHistogramWithBuckets creates a Histogram metrics with custom buckets on reg.
func NewHistogramWithBuckets(
	reg prometheus.Registerer,
	name, subsystem, help string,
	labels []string,
	buckets []float64,
) *prometheus.HistogramVec {
	return promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets},
		labels)
}
