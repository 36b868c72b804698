package report

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector bridges a Metrics instance into a Prometheus registry so the
// counters can be gathered alongside standard runtime collectors. It emits
// the same families, with the same names and labels, as PrometheusExport:
// one vocabulary regardless of which exposition path an operator scrapes.
type Collector struct {
	metrics *Metrics

	calls       *prometheus.Desc
	intercepted *prometheus.Desc
	byCategory  *prometheus.Desc
}

// NewCollector creates a collector projecting m.
func NewCollector(m *Metrics) *Collector {
	return &Collector{
		metrics: m,
		calls: prometheus.NewDesc(
			"faultguard_calls_total",
			"Supervised calls by state",
			[]string{"state"}, nil),
		intercepted: prometheus.NewDesc(
			"faultguard_faults_intercepted_total",
			"Unwinds intercepted and translated",
			nil, nil),
		byCategory: prometheus.NewDesc(
			"faultguard_faults_by_category_total",
			"Intercepted faults by category",
			[]string{"category"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.calls
	ch <- c.intercepted
	ch <- c.byCategory
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.calls, prometheus.CounterValue, float64(c.metrics.CallsStarted.Load()), "started")
	ch <- prometheus.MustNewConstMetric(c.calls, prometheus.CounterValue, float64(c.metrics.CallsCompleted.Load()), "completed")
	ch <- prometheus.MustNewConstMetric(c.calls, prometheus.CounterValue, float64(c.metrics.CallsSucceeded.Load()), "succeeded")
	ch <- prometheus.MustNewConstMetric(c.intercepted, prometheus.CounterValue, float64(c.metrics.FaultsIntercepted.Load()))

	for category, count := range c.metrics.ByCategory() {
		ch <- prometheus.MustNewConstMetric(c.byCategory, prometheus.CounterValue, float64(count), category)
	}
}
