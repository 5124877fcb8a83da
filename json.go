package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/giygas/medcalc/batch"
	"github.com/giygas/medcalc/calculators/entities"
	"github.com/giygas/medcalc/logging"
	"github.com/giygas/medcalc/units"
)

type calculatorEntry struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

type computeOutput struct {
	Calculator string `json:"calculator"`
	Title      string `json:"title"`
	entities.Result
}

type conversionOutput struct {
	Kind        string           `json:"kind"`
	Input       []units.Quantity `json:"input"`
	Value       float64          `json:"value"`
	Unit        string           `json:"unit"`
	Explanation string           `json:"explanation"`
}

type batchSummary struct {
	batch.Summary
	Lines   int                 `json:"lines"`
	Skipped []batch.SkippedLine `json:"skipped,omitempty"`
}

// writeJSON writes payload as indented JSON followed by a newline.
func writeJSON(w io.Writer, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		logging.Error("Failed to marshal JSON output", "error", err, "payload_type", fmt.Sprintf("%T", payload))
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logging.Debug("Wrote JSON output", "size", len(data))
	return nil
}

// writeJSONLine writes payload as one compact line.
func writeJSONLine(w io.Writer, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeCalculatorList(w io.Writer, entries []calculatorEntry) error {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%-*s  %s\n", width, e.Name, e.Title)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeResultText(w io.Writer, title string, res entities.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", title)
	b.WriteString(strings.TrimRight(res.Explanation, "\n"))
	fmt.Fprintf(&b, "\n\nAnswer: %s\n", units.FormatNumber(res.Answer))
	if len(res.Assumptions) > 0 {
		b.WriteString("Assumed:\n")
		for _, a := range res.Assumptions {
			fmt.Fprintf(&b, "  %s = %s\n", a.Field, a.Value)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeConversionText(w io.Writer, out conversionOutput) error {
	_, err := fmt.Fprintf(w, "%s\n\n%s %s\n",
		strings.TrimSpace(out.Explanation), units.FormatNumber(out.Value), out.Unit)
	return err
}

// writeOutcomesJSON writes one line per outcome, then the summary line.
func writeOutcomesJSON(w io.Writer, outcomes []batch.Outcome, summary batch.Summary, stats batch.ReadStats) error {
	for _, o := range outcomes {
		if err := writeJSONLine(w, o); err != nil {
			return err
		}
	}
	return writeJSONLine(w, map[string]any{
		"summary": batchSummary{Summary: summary, Lines: stats.Lines, Skipped: stats.Skipped},
	})
}

func writeOutcomesText(w io.Writer, outcomes []batch.Outcome, summary batch.Summary, stats batch.ReadStats) error {
	var b strings.Builder
	for _, o := range outcomes {
		if o.Error != "" {
			fmt.Fprintf(&b, "%s\t%s\terror: %s\n", o.ID, o.Calculator, o.Error)
			continue
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\n", o.ID, o.Calculator, units.FormatNumber(o.Result.Answer))
	}
	for _, s := range stats.Skipped {
		fmt.Fprintf(&b, "line %d skipped: %s\n", s.Line, s.Reason)
	}
	fmt.Fprintf(&b, "%d cases, %d succeeded, %d failed, %d of %d lines skipped\n",
		summary.Total, summary.Succeeded, summary.Failed, len(stats.Skipped), stats.Lines)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSelfCheckText(w io.Writer, status string, details map[string]any) error {
	var b strings.Builder
	fmt.Fprintf(&b, "status: %s\n", status)
	fmt.Fprintf(&b, "cases: %v passed of %v\n", details["passed"], details["cases"])
	if failures, ok := details["failures"].(map[string]string); ok {
		for _, name := range slices.Sorted(maps.Keys(failures)) {
			fmt.Fprintf(&b, "  %s: %s\n", name, failures[name])
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
