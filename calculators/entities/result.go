// Package entities holds the value types shared by the calculators:
// parameter structs, closed enumerations for categorical inputs, and the
// result of a calculation.
package entities

// Assumption records a parameter the calculator filled in because the
// caller did not supply it.
type Assumption struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Result is the outcome of one calculation. Assumptions lists the
// defaulted parameters in the order they were applied.
type Result struct {
	Explanation string       `json:"explanation"`
	Answer      float64      `json:"answer"`
	Assumptions []Assumption `json:"assumptions,omitempty"`
}

// Flag returns a pointer to b, for filling optional boolean parameters.
func Flag(b bool) *bool {
	return &b
}
