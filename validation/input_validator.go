// Package validation checks calculator parameters before any formula runs
// and reports failures as typed field errors.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/giygas/medcalc/logging"
	"github.com/giygas/medcalc/units"
	"github.com/go-playground/validator/v10"
)

// Calculator names are lower snake case, compiled once.
var calculatorNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

const maxCalculatorNameLength = 64

// tagErrors maps validator tags to the sentinel reported for them.
var tagErrors = map[string]error{
	"required": ErrMissingRequiredField,
	"oneof":    ErrUnrecognizedValue,
	"finite":   ErrOutOfRange,
	"gt":       ErrOutOfRange,
	"gte":      ErrOutOfRange,
	"lt":       ErrOutOfRange,
	"lte":      ErrOutOfRange,
	"unit":     units.ErrUnrecognizedUnit,
}

// InputValidator validates decoded parameter structs and calculator names.
type InputValidator struct {
	validate *validator.Validate
}

// NewInputValidator creates a validator that reports fields by their JSON
// names and checks every units.Quantity it reaches.
func NewInputValidator() *InputValidator {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	validate.RegisterStructValidation(quantityLevel, units.Quantity{})

	return &InputValidator{validate: validate}
}

func quantityLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(units.Quantity)
	if math.IsNaN(q.Value) || math.IsInf(q.Value, 0) {
		sl.ReportError(q.Value, "value", "Value", "finite", "")
	}
	if strings.TrimSpace(q.Unit) == "" {
		sl.ReportError(q.Unit, "unit", "Unit", "unit", "")
	}
}

// ValidateParams checks a parameter struct. Every failing field is
// reported as a *FieldError; several failures are joined.
func (v *InputValidator) ValidateParams(params any) error {
	err := v.validate.Struct(params)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("cannot validate parameters: %w", err)
	}

	errs := make([]error, 0, len(validationErrors))
	for _, fe := range validationErrors {
		sentinel, ok := tagErrors[fe.Tag()]
		if !ok {
			sentinel = fmt.Errorf("failed %q check", fe.Tag())
		}

		fieldErr := &FieldError{Field: fieldPath(fe), Err: sentinel}
		if fe.Tag() != "required" {
			fieldErr.Value = fe.Value()
		}
		errs = append(errs, fieldErr)
	}

	logging.Debug("Parameter validation failed", "errors", len(errs))
	return errors.Join(errs...)
}

// fieldPath drops the struct name from the validator namespace, so a
// nested unit reads as "height[0].unit" rather than "IBWParams.height[0].unit".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

// NormalizeCalculatorName lowercases a calculator name and accepts hyphens
// and spaces in place of underscores.
func NormalizeCalculatorName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", " ", "_").Replace(name)
}

// ValidateCalculatorName checks the shape of a calculator name after
// normalisation. It does not check that the calculator exists.
func (v *InputValidator) ValidateCalculatorName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("calculator name cannot be empty")
	}

	normalized := NormalizeCalculatorName(name)
	if len(normalized) > maxCalculatorNameLength {
		return fmt.Errorf("calculator name too long: maximum %d characters", maxCalculatorNameLength)
	}

	if !calculatorNameRegex.MatchString(normalized) {
		return fmt.Errorf("calculator name contains invalid characters. Only letters, digits, underscores, hyphens and spaces are allowed")
	}

	return nil
}

// ParseChoice resolves a categorical value against a closed set of
// spellings. Matching ignores case, width and repeated whitespace.
func ParseChoice[T any](field, value string, choices map[string]T) (T, error) {
	key := units.NormalizeToken(value)
	for spelling, choice := range choices {
		if units.NormalizeToken(spelling) == key {
			return choice, nil
		}
	}
	var zero T
	return zero, Unrecognized(field, value)
}
