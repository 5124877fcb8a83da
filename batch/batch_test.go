package batch

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/text/encoding/charmap"

	"github.com/giygas/medcalc/calculators"
	"github.com/giygas/medcalc/metrics"
)

const sampleInput = `{"id":"case-1","calculator":"qtc_rautaharju","parameters":{"heart_rate":[110,"bpm"],"qt_interval":[330,"msec"]}}

{"calculator":"ideal_body_weight","parameters":{"sex":"Male","height":[72,"in"]}}
not json at all
{"id":"case-4","parameters":{}}
{"id":"bad id with spaces","calculator":"bmi","parameters":{}}
{"id":"case-7","calculator":"bmi","parameters":{"weight":[70,"kg"]}}
`

func TestReadCases(t *testing.T) {
	cases, stats, err := ReadCases(strings.NewReader(sampleInput), 1024)
	if err != nil {
		t.Fatalf("ReadCases() error = %v", err)
	}

	if stats.Lines != 7 {
		t.Errorf("Expected 7 lines, got %d", stats.Lines)
	}
	if len(cases) != 3 || stats.Cases != 3 {
		t.Fatalf("Expected 3 cases, got %d (stats %d)", len(cases), stats.Cases)
	}

	if cases[0].ID != "case-1" || cases[0].Line != 1 {
		t.Errorf("Unexpected first case %+v", cases[0])
	}
	if _, err := uuid.Parse(cases[1].ID); err != nil {
		t.Errorf("Missing id should be replaced by a UUID, got %q", cases[1].ID)
	}
	if cases[1].Line != 3 {
		t.Errorf("Expected second case on line 3, got %d", cases[1].Line)
	}
	if cases[2].ID != "case-7" {
		t.Errorf("Expected third case case-7, got %q", cases[2].ID)
	}

	wantSkipped := []SkippedLine{
		{Line: 2, Reason: ReasonEmpty},
		{Line: 4, Reason: ReasonMalformed},
		{Line: 5, Reason: ReasonMissingCalculator},
		{Line: 6, Reason: ReasonInvalidID},
	}
	if len(stats.Skipped) != len(wantSkipped) {
		t.Fatalf("Expected %d skipped lines, got %+v", len(wantSkipped), stats.Skipped)
	}
	for i, want := range wantSkipped {
		got := stats.Skipped[i]
		if got.Line != want.Line || got.Reason != want.Reason {
			t.Errorf("Skipped[%d] = %+v, want line %d reason %s", i, got, want.Line, want.Reason)
		}
	}
}

func TestReadCases_SkipMetrics(t *testing.T) {
	counter := metrics.BatchLinesSkipped.WithLabelValues(ReasonMalformed)
	before := testutil.ToFloat64(counter)

	if _, _, err := ReadCases(strings.NewReader("{\n[1,2]\n"), 1024); err != nil {
		t.Fatalf("ReadCases() error = %v", err)
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("malformed counter increased by %v, want 2", got)
	}
}

func TestReadCases_ISO88591(t *testing.T) {
	line := `{"id":"café","calculator":"bmi","parameters":{}}` + "\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(line)
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	// é is outside the case id alphabet, so the id shows up decoded in
	// the skip detail.
	cases, stats, err := ReadCases(strings.NewReader(encoded), 1024)
	if err != nil {
		t.Fatalf("ReadCases() error = %v", err)
	}
	if len(cases) != 0 || len(stats.Skipped) != 1 {
		t.Fatalf("Expected the case to be skipped, got cases %v skipped %v", cases, stats.Skipped)
	}
	if !strings.Contains(stats.Skipped[0].Detail, "café") {
		t.Errorf("Expected the decoded id in the skip detail, got %q", stats.Skipped[0].Detail)
	}
}

func TestReadCases_ISO88591Parameters(t *testing.T) {
	line := `{"id":"latin1","calculator":"heart","parameters":{"age":[50,"años"]}}` + "\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(line)
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	cases, _, err := ReadCases(strings.NewReader(encoded), 1024)
	if err != nil {
		t.Fatalf("ReadCases() error = %v", err)
	}
	if len(cases) != 1 {
		t.Fatalf("Expected 1 case, got %d", len(cases))
	}
	if !bytes.Contains(cases[0].Parameters, []byte("años")) {
		t.Errorf("Expected UTF-8 parameters, got %s", cases[0].Parameters)
	}
}

func TestReadCases_ByteOrderMark(t *testing.T) {
	input := "\ufeff" + `{"id":"bom","calculator":"bmi","parameters":{}}` + "\n"

	cases, _, err := ReadCases(strings.NewReader(input), 1024)
	if err != nil {
		t.Fatalf("ReadCases() error = %v", err)
	}
	if len(cases) != 1 || cases[0].ID != "bom" {
		t.Errorf("Expected the first line to parse, got %+v", cases)
	}
}

func TestReadCases_LineTooLong(t *testing.T) {
	input := `{"id":"ok","calculator":"bmi","parameters":{}}` + "\n" +
		`{"id":"long","calculator":"bmi","parameters":{"pad":"` + strings.Repeat("x", 200) + `"}}` + "\n"

	_, _, err := ReadCases(strings.NewReader(input), 100)
	if !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("Expected ErrLineTooLong, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected the line number in %q", err)
	}
}

func TestRunner_Run(t *testing.T) {
	cases, _, err := ReadCases(strings.NewReader(sampleInput), 1024)
	if err != nil {
		t.Fatalf("ReadCases() error = %v", err)
	}

	outcomes, summary := NewRunnerWithWorkers(calculators.NewRegistry(), 2).Run(context.Background(), cases)

	if summary != (Summary{Total: 3, Succeeded: 2, Failed: 1}) {
		t.Errorf("Unexpected summary %+v", summary)
	}

	if outcomes[0].ID != "case-1" || outcomes[0].Result == nil || outcomes[0].Result.Answer != 421.667 {
		t.Errorf("Unexpected first outcome %+v", outcomes[0])
	}
	if outcomes[1].Result == nil || outcomes[1].Result.Answer != 77.6 {
		t.Errorf("Unexpected second outcome %+v", outcomes[1])
	}

	failed := outcomes[2]
	if failed.Result != nil || failed.Error == "" {
		t.Fatalf("Expected case-7 to fail, got %+v", failed)
	}
	if !failed.InvalidInput {
		t.Error("A missing height should be reported as invalid input")
	}
	if !strings.Contains(failed.Error, "height") {
		t.Errorf("Expected the missing field in %q", failed.Error)
	}
}

func TestRunner_PreservesOrder(t *testing.T) {
	var cases []Case
	for i := range 50 {
		hr := 60 + i
		cases = append(cases, Case{
			ID:         uuid.NewString(),
			Calculator: "qtc_rautaharju",
			Parameters: []byte(`{"heart_rate":[` + strconv.Itoa(hr) + `,"bpm"],"qt_interval":[180,"msec"]}`),
			Line:       i + 1,
		})
	}

	outcomes, summary := NewRunnerWithWorkers(calculators.NewRegistry(), 8).Run(context.Background(), cases)
	if summary.Failed != 0 {
		t.Fatalf("Unexpected failures: %+v", summary)
	}
	for i, o := range outcomes {
		// QT 180 makes QTc equal to 120 + HR.
		if want := float64(180 + i); o.Result.Answer != want || o.Line != i+1 {
			t.Errorf("outcome %d = %v on line %d, want %v", i, o.Result.Answer, o.Line, want)
		}
	}
}

func TestRunner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cases := []Case{{ID: "a", Calculator: "wells_dvt", Parameters: []byte(`{}`)}}
	outcomes, summary := NewRunner(calculators.NewRegistry()).Run(ctx, cases)

	if summary.Failed != 1 {
		t.Errorf("Expected the case to fail after cancellation, got %+v", summary)
	}
	if outcomes[0].Error != context.Canceled.Error() {
		t.Errorf("Expected %q, got %q", context.Canceled.Error(), outcomes[0].Error)
	}
}

func TestRunner_Empty(t *testing.T) {
	outcomes, summary := NewRunner(calculators.NewRegistry()).Run(context.Background(), nil)
	if len(outcomes) != 0 || summary.Total != 0 {
		t.Errorf("Expected no outcomes, got %v %+v", outcomes, summary)
	}
}

func TestNewRunnerWithWorkers_Minimum(t *testing.T) {
	r := NewRunnerWithWorkers(calculators.NewRegistry(), 0)
	if r.workers != 1 {
		t.Errorf("Expected at least one worker, got %d", r.workers)
	}
}
