// Package metrics provides Prometheus metrics for calculator runs.
// It exports four metrics:
//   - medcalc_calculations_total: Counter with calculator and outcome labels
//   - medcalc_calculation_duration_seconds: Histogram with a calculator label
//   - medcalc_conversions_total: Counter with a kind label
//   - medcalc_batch_lines_skipped_total: Counter with a reason label
//
// The metrics live in the package Registry rather than the default one, so
// a run can be written out as a text exposition file with WriteTextfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

var (
	Registry = prometheus.NewRegistry()

	CalculationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medcalc_calculations_total",
			Help: "Total calculator runs",
		},
		[]string{"calculator", "outcome"},
	)

	CalculationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medcalc_calculation_duration_seconds",
			Help:    "Calculator run latency, including decoding and validation",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		},
		[]string{"calculator"},
	)

	ConversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medcalc_conversions_total",
			Help: "Total standalone unit conversions",
		},
		[]string{"kind"},
	)

	BatchLinesSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medcalc_batch_lines_skipped_total",
			Help: "Batch input lines that could not be run",
		},
		[]string{"reason"},
	)
)

func init() {
	Registry.MustRegister(CalculationsTotal)
	Registry.MustRegister(CalculationDuration)
	Registry.MustRegister(ConversionsTotal)
	Registry.MustRegister(BatchLinesSkipped)
}

// WriteTextfile writes every metric in Registry to path in the Prometheus
// text format. The file is replaced atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
