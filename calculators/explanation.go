package calculators

import (
	"fmt"
	"strings"

	"github.com/giygas/medcalc/calculators/entities"
	"github.com/giygas/medcalc/units"
	"github.com/giygas/medcalc/validation"
)

// explanation collects sentence fragments in order and joins them once.
type explanation struct {
	parts       []string
	assumptions []entities.Assumption
}

func (e *explanation) add(s string) {
	e.parts = append(e.parts, s)
}

func (e *explanation) addf(format string, args ...any) {
	e.parts = append(e.parts, fmt.Sprintf(format, args...))
}

// assume records a parameter filled in by default.
func (e *explanation) assume(field, value string) {
	e.assumptions = append(e.assumptions, entities.Assumption{Field: field, Value: value})
}

func (e *explanation) result(answer float64) entities.Result {
	return entities.Result{
		Explanation: strings.Join(e.parts, ""),
		Answer:      answer,
		Assumptions: e.assumptions,
	}
}

// pointsLabel renders "1 point" or "n points".
func pointsLabel(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d point", n)
	}
	return fmt.Sprintf("%d points", n)
}

func num(x float64) string {
	return units.FormatNumber(x)
}

// requireSex parses a required sex parameter.
func requireSex(field, value string) (entities.Sex, error) {
	if strings.TrimSpace(value) == "" {
		return entities.Male, validation.Missing(field)
	}
	return entities.ParseSex(field, value)
}

func requireAge(field string, age *units.Age) (string, float64, error) {
	if age == nil {
		return "", 0, validation.Missing(field)
	}
	text, years, err := units.AgeToYears(*age)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", field, err)
	}
	if years < 0 {
		return "", 0, validation.OutOfRange(field, years)
	}
	return text, years, nil
}

func requireWeight(field string, weight *units.Quantity) (string, float64, error) {
	if weight == nil {
		return "", 0, validation.Missing(field)
	}
	text, kg, err := units.WeightToKilograms(*weight)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", field, err)
	}
	if kg <= 0 {
		return "", 0, validation.OutOfRange(field, weight.String())
	}
	return text, kg, nil
}

func requireHeight(field string, height *units.Height, convert func(units.Height) (string, float64, error)) (string, float64, error) {
	if height == nil {
		return "", 0, validation.Missing(field)
	}
	text, value, err := convert(*height)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", field, err)
	}
	if value <= 0 {
		return "", 0, validation.OutOfRange(field, value)
	}
	return text, value, nil
}
