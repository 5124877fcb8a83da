// Package interfaces defines the contracts between the calculator registry,
// its callers and its supporting services, so each side can be tested
// against a mock of the other.
package interfaces

import (
	"github.com/giygas/medcalc/calculators/entities"
)

// Calculator is one named clinical formula. Compute decodes JSON
// parameters, validates them and returns the derivation and answer.
// Implementations hold no mutable state and are safe for concurrent use.
type Calculator interface {
	Name() string
	Title() string
	Compute(params []byte) (entities.Result, error)
}

// CalculatorRegistry resolves calculators by their stable name.
type CalculatorRegistry interface {
	// Lookup accepts the name in any case, with hyphens or spaces for
	// underscores.
	Lookup(name string) (Calculator, error)

	// Names lists the registered calculators in sorted order.
	Names() []string

	// Compute looks up a calculator and runs it.
	Compute(name string, params []byte) (entities.Result, error)
}

// SelfChecker runs reference cases and reports whether the calculators
// still produce the expected answers.
type SelfChecker interface {
	// SelfCheck returns "healthy", "degraded" or "unhealthy" with the
	// per-case details.
	SelfCheck() (status string, details map[string]any)
}

// InputValidator checks decoded parameters before any formula runs.
type InputValidator interface {
	// ValidateParams reports missing or malformed fields of a parameter
	// struct.
	ValidateParams(params any) error

	// ValidateCalculatorName checks the shape of a calculator name.
	ValidateCalculatorName(name string) error
}
