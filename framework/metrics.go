package framework

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "tour_contract"

// Metrics collects request latencies and test outcomes for a run, and can write them in
// the Prometheus text format for a node-exporter textfile collector.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.HistogramVec
	tests    *prometheus.GaugeVec
	passRate prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Latency of requests sent to the service under test.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"endpoint", "status"}),
		tests: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "tests",
			Help:      "Number of tests in the last run by result.",
		}, []string{"result"}),
		passRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "pass_rate_percent",
			Help:      "Percentage of tests that passed in the last run.",
		}),
	}
	m.registry.MustRegister(m.requests, m.tests, m.passRate)
	return m
}

// ObserveRequest implements RequestObserver.
func (m *Metrics) ObserveRequest(endpoint string, resp Response) {
	m.requests.WithLabelValues(endpoint, resp.StatusString()).Observe(resp.Elapsed.Seconds())
}

// RecordResults sets the per-result test gauges from a finished run.
func (m *Metrics) RecordResults(results Results) {
	m.tests.WithLabelValues(StatusPassed.String()).Set(float64(results.Passed()))
	m.tests.WithLabelValues(StatusWarning.String()).Set(float64(results.Warned()))
	m.tests.WithLabelValues(StatusFailed.String()).Set(float64(results.Failed()))
	m.tests.WithLabelValues("skipped").Set(float64(len(results.Skipped)))
	m.passRate.Set(results.PassRate())
}

// WriteToFile writes all metrics atomically to path.
func (m *Metrics) WriteToFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("could not write metrics file: %w", err)
	}
	return nil
}
