package metrics

import "time"

// ObserveCalculation records one calculator run that started at start.
func ObserveCalculation(calculator, outcome string, start time.Time) {
	CalculationsTotal.WithLabelValues(calculator, outcome).Inc()
	CalculationDuration.WithLabelValues(calculator).Observe(time.Since(start).Seconds())
}

// ObserveConversion records one standalone unit conversion.
func ObserveConversion(kind string) {
	ConversionsTotal.WithLabelValues(kind).Inc()
}

// ObserveSkippedLine records a batch line that was not run.
func ObserveSkippedLine(reason string) {
	BatchLinesSkipped.WithLabelValues(reason).Inc()
}
