package units

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedUnit is returned for unit strings outside the set a
	// converter accepts, or for unit pairs that cannot be converted.
	ErrUnrecognizedUnit = errors.New("unrecognized unit")

	// ErrMissingValence is returned when an equivalents conversion is
	// requested for a substance without a valence.
	ErrMissingValence = errors.New("missing valence")

	// ErrMissingMolarMass is returned when a mass/molar conversion is
	// requested for a substance without a molar mass.
	ErrMissingMolarMass = errors.New("missing molar mass")
)

func unrecognizedUnit(kind, unit string) error {
	return fmt.Errorf("%w: %q is not a recognized %s unit", ErrUnrecognizedUnit, unit, kind)
}
