package unit

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsTestLogger counts test outcomes in a Prometheus registry and, if a file path is given,
// writes them in the text exposition format when the run ends, for pickup by a node exporter's
// textfile collector.
type MetricsTestLogger struct {
	filePath string
	registry *prometheus.Registry
	results  *prometheus.CounterVec
	excluded prometheus.Counter
	duration prometheus.Histogram
	lastRun  prometheus.Gauge
}

// NewMetricsTestLogger creates a MetricsTestLogger with its own registry.
func NewMetricsTestLogger(filePath string) *MetricsTestLogger {
	m := &MetricsTestLogger{
		filePath: filePath,
		registry: prometheus.NewRegistry(),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dheunit",
			Name:      "tests_total",
			Help:      "Number of tests executed, by outcome.",
		}, []string{"status"}),
		excluded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dheunit",
			Name:      "tests_skipped_total",
			Help:      "Number of tests and subtests skipped or excluded by filters.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dheunit",
			Name:      "test_duration_seconds",
			Help:      "Duration of each test, including its context hooks.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dheunit",
			Name:      "last_run_ok",
			Help:      "1 if the last run had no failures, 0 otherwise.",
		}),
	}
	m.registry.MustRegister(m.results, m.excluded, m.duration, m.lastRun)
	return m
}

// Registry returns the registry holding the metrics.
func (m *MetricsTestLogger) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsTestLogger) TestStarted(TestID) {}

func (m *MetricsTestLogger) TestFinished(result Result) {
	m.results.WithLabelValues(result.Status()).Inc()
	m.duration.Observe(result.Duration.Seconds())
}

func (m *MetricsTestLogger) TestSkipped(TestID, string) {
	m.excluded.Inc()
}

func (m *MetricsTestLogger) EndLog(results Results) error {
	if results.OK() {
		m.lastRun.Set(1)
	} else {
		m.lastRun.Set(0)
	}
	if m.filePath == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(m.filePath, m.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
