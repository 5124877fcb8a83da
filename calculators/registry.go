// Package calculators implements the clinical calculators. Each one is a
// pure function from its parameter struct to an entities.Result; the
// Registry exposes them by name behind JSON decoding and validation.
package calculators

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"github.com/giygas/medcalc/calculators/entities"
	"github.com/giygas/medcalc/interfaces"
	"github.com/giygas/medcalc/metrics"
	"github.com/giygas/medcalc/units"
	"github.com/giygas/medcalc/validation"
)

var (
	// ErrUnknownCalculator is returned when no calculator has the requested name.
	ErrUnknownCalculator = errors.New("unknown calculator")

	// ErrMalformedParameters is returned when parameters are not a JSON
	// object of the calculator's fields.
	ErrMalformedParameters = errors.New("malformed parameters")
)

// calculator adapts a typed calculator function to interfaces.Calculator.
type calculator[P any] struct {
	name      string
	title     string
	validator interfaces.InputValidator
	fn        func(P) (entities.Result, error)
}

func (c *calculator[P]) Name() string  { return c.name }
func (c *calculator[P]) Title() string { return c.title }

// Compute decodes params into P, validates it and runs the formula.
// Unknown fields are rejected so a misspelt factor is not silently
// scored as missing.
func (c *calculator[P]) Compute(params []byte) (result entities.Result, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveCalculation(c.name, outcome(err), start)
	}()

	var p P
	if len(bytes.TrimSpace(params)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(params))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return entities.Result{}, fmt.Errorf("%s: %w: %v", c.name, ErrMalformedParameters, err)
		}
	}

	if err := c.validator.ValidateParams(p); err != nil {
		return entities.Result{}, fmt.Errorf("%s: %w", c.name, err)
	}

	result, err = c.fn(p)
	if err != nil {
		return entities.Result{}, fmt.Errorf("%s: %w", c.name, err)
	}
	return result, nil
}

// outcome classifies an error for the calculations metric.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case IsInvalidInput(err):
		return metrics.OutcomeInvalidInput
	default:
		return metrics.OutcomeError
	}
}

// IsInvalidInput reports whether err was caused by the caller's
// parameters rather than by the calculator.
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		ErrMalformedParameters,
		validation.ErrMissingRequiredField,
		validation.ErrUnrecognizedValue,
		validation.ErrOutOfRange,
		units.ErrUnrecognizedUnit,
		units.ErrMissingValence,
		units.ErrMissingMolarMass,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func newCalculator[P any](v interfaces.InputValidator, name, title string, fn func(P) (entities.Result, error)) interfaces.Calculator {
	return &calculator[P]{name: name, title: title, validator: v, fn: fn}
}

// Registry maps stable calculator names to calculators. It is read-only
// after construction.
type Registry struct {
	calculators map[string]interfaces.Calculator
	validator   interfaces.InputValidator
}

var _ interfaces.CalculatorRegistry = (*Registry)(nil)

// NewRegistry returns a registry holding every calculator.
func NewRegistry() *Registry {
	return NewRegistryWithValidator(validation.NewInputValidator())
}

// NewRegistryWithValidator returns a registry whose calculators validate
// parameters with v.
func NewRegistryWithValidator(v interfaces.InputValidator) *Registry {
	r := &Registry{calculators: make(map[string]interfaces.Calculator), validator: v}
	r.add(newCalculator(v, "caprini", "Caprini Score for Venous Thromboembolism", Caprini))
	r.add(newCalculator(v, "heart", "HEART Score for Major Cardiac Events", Heart))
	r.add(newCalculator(v, "wells_dvt", "Wells' Criteria for DVT", WellsDVT))
	r.add(newCalculator(v, "free_water_deficit", "Free Water Deficit", FreeWaterDeficit))
	r.add(newCalculator(v, "homa_ir", "HOMA-IR (Homeostatic Model Assessment for Insulin Resistance)", HomaIR))
	r.add(newCalculator(v, "ideal_body_weight", "Ideal Body Weight", IdealBodyWeight))
	r.add(newCalculator(v, "adjusted_body_weight", "Adjusted Body Weight", AdjustedBodyWeight))
	r.add(newCalculator(v, "bmi", "Body Mass Index (BMI)", BMI))
	r.add(newCalculator(v, "qtc_rautaharju", "QTc Rautaharju Calculator", QTcRautaharju))
	r.add(newCalculator(v, "qtc_bazett", "QTc Bazett Calculator", QTcBazett))
	r.add(newCalculator(v, "qtc_hodges", "QTc Hodges Calculator", QTcHodges))
	return r
}

func (r *Registry) add(c interfaces.Calculator) {
	if _, exists := r.calculators[c.Name()]; exists {
		panic("calculators: duplicate calculator " + c.Name())
	}
	r.calculators[c.Name()] = c
}

// Lookup finds a calculator by name, accepting any case and hyphens or
// spaces for underscores.
func (r *Registry) Lookup(name string) (interfaces.Calculator, error) {
	if err := r.validator.ValidateCalculatorName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCalculator, err)
	}
	c, ok := r.calculators[validation.NormalizeCalculatorName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, name)
	}
	return c, nil
}

// Names returns the calculator names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.calculators))
	for name := range r.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compute runs the named calculator on JSON parameters.
func (r *Registry) Compute(name string, params []byte) (entities.Result, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return entities.Result{}, err
	}
	return c.Compute(params)
}
