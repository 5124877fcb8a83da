package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giygas/medcalc/batch"
	"github.com/giygas/medcalc/health"
	"github.com/giygas/medcalc/logging"
	"github.com/giygas/medcalc/metrics"
	"github.com/giygas/medcalc/units"
)

// errUnhealthy makes selfcheck exit non-zero.
var errUnhealthy = errors.New("self-check is unhealthy")

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available calculators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]calculatorEntry, 0, len(a.registry.Names()))
			for _, name := range a.registry.Names() {
				c, err := a.registry.Lookup(name)
				if err != nil {
					return err
				}
				entries = append(entries, calculatorEntry{Name: c.Name(), Title: c.Title()})
			}

			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			return writeCalculatorList(cmd.OutOrStdout(), entries)
		},
	}
}

func computeCmd(a *app) *cobra.Command {
	var paramsFile string

	cmd := &cobra.Command{
		Use:   "compute <calculator> [parameters-json]",
		Short: "Run one calculator",
		Long: "Run one calculator on JSON parameters given inline, with --params <file>, " +
			"or with --params - to read standard input.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.registry.Lookup(args[0])
			if err != nil {
				return err
			}

			var params []byte
			switch {
			case len(args) == 2 && paramsFile != "":
				return errors.New("give parameters inline or with --params, not both")
			case len(args) == 2:
				params = []byte(args[1])
			case paramsFile != "":
				params, err = readInput(cmd, paramsFile)
				if err != nil {
					return err
				}
			}

			res, err := c.Compute(params)
			if err != nil {
				return err
			}
			logging.Debug("Calculation completed", "calculator", c.Name(), "answer", res.Answer)

			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), computeOutput{Calculator: c.Name(), Title: c.Title(), Result: res})
			}
			return writeResultText(cmd.OutOrStdout(), c.Title(), res)
		},
	}

	cmd.Flags().StringVarP(&paramsFile, "params", "p", "", "Read parameters from this JSON file, or - for standard input")
	return cmd
}

// Conversion targets by kind. Weight, age and temperature have one target.
var heightTargets = map[string]func(units.Height) (string, float64, error){
	"m":  units.HeightToMeters,
	"cm": units.HeightToCentimeters,
	"in": units.HeightToInches,
}

func convertCmd(a *app) *cobra.Command {
	var to, substance string

	cmd := &cobra.Command{
		Use:   "convert <height|weight|age|temperature|concentration> <value> <unit> [<value> <unit>...]",
		Short: "Convert a measurement with an explanation",
		Long: "Convert a measurement. Heights go to --to m, cm or in (default cm), weights to kg, " +
			"ages to years and temperatures to degrees celsius. Concentrations need --to and --substance.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := strings.ToLower(args[0])
			pairs, err := parsePairs(args[1:])
			if err != nil {
				return err
			}

			out, err := convert(kind, pairs, to, substance)
			if err != nil {
				return err
			}
			metrics.ObserveConversion(kind)

			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return writeConversionText(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target unit")
	cmd.Flags().StringVar(&substance, "substance", "", "Substance for concentration conversions, such as sodium or glucose")
	return cmd
}

// convert dispatches one conversion. Only heights and ages accept more
// than one value/unit pair.
func convert(kind string, pairs []units.Quantity, to, substance string) (conversionOutput, error) {
	out := conversionOutput{Kind: kind, Input: pairs}
	single := func() (units.Quantity, error) {
		if len(pairs) != 1 {
			return units.Quantity{}, fmt.Errorf("%s takes one value and unit, got %d", kind, len(pairs))
		}
		return pairs[0], nil
	}

	var err error
	switch kind {
	case "height":
		target := to
		if target == "" {
			target = "cm"
		}
		fn, ok := heightTargets[strings.ToLower(target)]
		if !ok {
			return out, fmt.Errorf("%w: height can be converted to m, cm or in, got %q", units.ErrUnrecognizedUnit, to)
		}
		out.Unit = strings.ToLower(target)
		out.Explanation, out.Value, err = fn(units.Height(pairs))

	case "weight":
		if to != "" && units.NormalizeToken(to) != "kg" {
			return out, fmt.Errorf("%w: weight is converted to kg, got %q", units.ErrUnrecognizedUnit, to)
		}
		var q units.Quantity
		if q, err = single(); err != nil {
			return out, err
		}
		out.Unit = "kg"
		out.Explanation, out.Value, err = units.WeightToKilograms(q)

	case "age":
		out.Unit = "years"
		out.Explanation, out.Value, err = units.AgeToYears(units.Age(pairs))

	case "temperature":
		var q units.Quantity
		if q, err = single(); err != nil {
			return out, err
		}
		out.Unit = "degrees celsius"
		out.Explanation, out.Value, err = units.TemperatureToCelsius(q)

	case "concentration":
		var q units.Quantity
		if q, err = single(); err != nil {
			return out, err
		}
		if to == "" || substance == "" {
			return out, errors.New("concentration conversions need --to and --substance")
		}
		s, lerr := units.LookupSubstance(substance)
		if lerr != nil {
			return out, fmt.Errorf("%w; known substances: %s", lerr, strings.Join(units.SubstanceNames(), ", "))
		}
		out.Unit = to
		out.Explanation, out.Value, err = units.ConvertConcentration(q.Value, s, q.Unit, to)

	default:
		return out, fmt.Errorf("unknown measurement %q: use height, weight, age, temperature or concentration", kind)
	}

	if err != nil {
		return out, fmt.Errorf("%s: %w", kind, err)
	}
	return out, nil
}

// parsePairs reads "5 ft 10 in" style arguments.
func parsePairs(args []string) ([]units.Quantity, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("expected value and unit pairs, got %d arguments", len(args))
	}
	pairs := make([]units.Quantity, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		value, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", args[i], err)
		}
		pairs = append(pairs, units.Q(value, args[i+1]))
	}
	return pairs, nil
}

func batchCmd(a *app) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <cases.jsonl|->",
		Short: "Run cases from a JSON Lines file",
		Long: `Run one case per line, each {"id": "...", "calculator": "...", "parameters": {...}}. ` +
			"Empty and malformed lines are skipped and counted; cases without an id get a generated one.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeInput, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeInput()

			cases, stats, err := batch.ReadCases(in, a.cfg.MaxBatchLineSize)
			if err != nil {
				return err
			}

			runner := batch.NewRunner(a.registry)
			if workers > 0 {
				runner = batch.NewRunnerWithWorkers(a.registry, workers)
			}
			outcomes, summary := runner.Run(cmd.Context(), cases)

			if a.jsonOutput() {
				return writeOutcomesJSON(cmd.OutOrStdout(), outcomes, summary, stats)
			}
			return writeOutcomesText(cmd.OutOrStdout(), outcomes, summary, stats)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent workers (default one per CPU)")
	return cmd
}

func selfcheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "selfcheck",
		Short: "Run reference cases and report whether the calculators agree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, details := health.NewSelfChecker(a.registry).SelfCheck()

			var err error
			if a.jsonOutput() {
				err = writeJSON(cmd.OutOrStdout(), map[string]any{"status": status, "details": details})
			} else {
				err = writeSelfCheckText(cmd.OutOrStdout(), status, details)
			}
			if err != nil {
				return err
			}

			if status == health.StatusUnhealthy {
				return errUnhealthy
			}
			return nil
		},
	}
}

// openInput opens path, or standard input for "-".
func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logging.Warn("Failed to close input file", "path", path, "error", err)
		}
	}, nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	in, closeInput, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer closeInput()

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters: %w", err)
	}
	return data, nil
}
