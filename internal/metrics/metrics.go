// Package metrics exposes evaluator and verifier counters as prometheus
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/smallyu/go-eds-dlp/internal/divpoly"
	"github.com/smallyu/go-eds-dlp/internal/verify"
)

const namespace = "eds"

// Row outcome label values.
const (
	ResultMatched    = "matched"
	ResultMismatched = "mismatched"
	ResultError      = "error"
)

// Metrics owns a registry with the verifier row counter. Evaluators are
// attached with WatchEvaluator.
type Metrics struct {
	Registry *prometheus.Registry
	Rows     *prometheus.CounterVec
}

// New creates a registry and registers the row counter on it.
func New() (*Metrics, error) {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verify",
			Name:      "rows_total",
			Help:      "Identity rows checked, by result.",
		}, []string{"result"}),
	}
	if err := m.Registry.Register(m.Rows); err != nil {
		return nil, err
	}
	return m, nil
}

// ObserveRow counts row by its outcome. It satisfies verify.Observer.
func (m *Metrics) ObserveRow(row verify.Row) {
	m.Rows.WithLabelValues(resultOf(row)).Inc()
}

func resultOf(row verify.Row) string {
	switch {
	case row.Err != nil:
		return ResultError
	case row.Matched:
		return ResultMatched
	default:
		return ResultMismatched
	}
}

// WatchEvaluator registers a collector reading e's work counters at scrape
// time. name distinguishes evaluators in the "evaluator" label.
func (m *Metrics) WatchEvaluator(name string, e *divpoly.Evaluator) error {
	return m.Registry.Register(NewEvaluatorCollector(name, e))
}

// WriteFile writes every registered metric to path in the text exposition
// format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}

var _ verify.Observer = (*Metrics)(nil)
