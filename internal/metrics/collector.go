package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/smallyu/go-eds-dlp/internal/divpoly"
)

// EvaluatorCollector reports the Stats of one divpoly.Evaluator.
type EvaluatorCollector struct {
	eval *divpoly.Evaluator

	computed *prometheus.Desc
	hits     *prometheus.Desc
	entries  *prometheus.Desc
}

// NewEvaluatorCollector returns a collector for e, labelled with name.
func NewEvaluatorCollector(name string, e *divpoly.Evaluator) *EvaluatorCollector {
	labels := prometheus.Labels{"evaluator": name}
	return &EvaluatorCollector{
		eval: e,
		computed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "divpoly", "computed_total"),
			"psi values derived from the recurrence (cache misses).",
			nil, labels,
		),
		hits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "divpoly", "cache_hits_total"),
			"psi lookups served from the cache.",
			nil, labels,
		),
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "divpoly", "cache_entries"),
			"psi values currently memoized.",
			nil, labels,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *EvaluatorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.computed
	ch <- c.hits
	ch <- c.entries
}

// Collect implements prometheus.Collector.
func (c *EvaluatorCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.eval.Stats()
	ch <- prometheus.MustNewConstMetric(c.computed, prometheus.CounterValue, float64(s.Computed))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(c.eval.CacheLen()))
}
