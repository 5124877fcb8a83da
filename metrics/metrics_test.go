package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCalculation(t *testing.T) {
	before := testutil.ToFloat64(CalculationsTotal.WithLabelValues("bmi", OutcomeOK))

	ObserveCalculation("bmi", OutcomeOK, time.Now())
	ObserveCalculation("bmi", OutcomeOK, time.Now())

	if got := testutil.ToFloat64(CalculationsTotal.WithLabelValues("bmi", OutcomeOK)); got != before+2 {
		t.Errorf("calculations_total = %v, want %v", got, before+2)
	}
}

func TestObserveConversionAndSkippedLine(t *testing.T) {
	conversions := testutil.ToFloat64(ConversionsTotal.WithLabelValues("height"))
	skipped := testutil.ToFloat64(BatchLinesSkipped.WithLabelValues("malformed"))

	ObserveConversion("height")
	ObserveSkippedLine("malformed")

	if got := testutil.ToFloat64(ConversionsTotal.WithLabelValues("height")); got != conversions+1 {
		t.Errorf("conversions_total = %v, want %v", got, conversions+1)
	}
	if got := testutil.ToFloat64(BatchLinesSkipped.WithLabelValues("malformed")); got != skipped+1 {
		t.Errorf("batch_lines_skipped_total = %v, want %v", got, skipped+1)
	}
}

func TestWriteTextfile(t *testing.T) {
	ObserveCalculation("heart", OutcomeInvalidInput, time.Now())

	path := filepath.Join(t.TempDir(), "medcalc.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading metrics file: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"# TYPE medcalc_calculations_total counter",
		`medcalc_calculations_total{calculator="heart",outcome="invalid_input"}`,
		"# TYPE medcalc_calculation_duration_seconds histogram",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics file missing %q", want)
		}
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "medcalc.prom"))
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
	if !strings.Contains(err.Error(), "writing metrics to") {
		t.Errorf("error = %q, want it to name the file", err)
	}
}
