package units

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Quantity is a measured value together with its unit.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Q builds a Quantity.
func Q(value float64, unit string) Quantity {
	return Quantity{Value: value, Unit: unit}
}

func (q Quantity) String() string {
	return FormatNumber(q.Value) + " " + q.Unit
}

// UnmarshalJSON accepts the pair form [value, "unit"] as well as
// {"value": v, "unit": "u"}.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	pairs, err := decodePairs(data)
	if err != nil {
		return err
	}
	if len(pairs) != 1 {
		return fmt.Errorf("expected a single value/unit pair, got %d", len(pairs))
	}
	*q = pairs[0]
	return nil
}

// Height is either a single quantity (m, cm, ft, in) or feet followed by
// inches, as in [5, "ft", 10, "in"].
type Height []Quantity

// NewHeight builds a single-unit height.
func NewHeight(value float64, unit string) *Height {
	h := Height{Q(value, unit)}
	return &h
}

// FeetInches builds a compound feet + inches height.
func FeetInches(feet, inches float64) *Height {
	h := Height{Q(feet, "ft"), Q(inches, "in")}
	return &h
}

func (h *Height) UnmarshalJSON(data []byte) error {
	pairs, err := decodePairs(data)
	if err != nil {
		return err
	}
	*h = pairs
	return nil
}

// Age is one or more value/unit pairs, as in [1, "years", 6, "months"].
type Age []Quantity

// Years builds an age expressed in years.
func Years(value float64) *Age {
	a := Age{Q(value, "years")}
	return &a
}

// NewAge builds an age from explicit pairs.
func NewAge(pairs ...Quantity) *Age {
	a := Age(pairs)
	return &a
}

func (a *Age) UnmarshalJSON(data []byte) error {
	pairs, err := decodePairs(data)
	if err != nil {
		return err
	}
	*a = pairs
	return nil
}

type plainQuantity Quantity

// decodePairs reads a quantity object, a list of quantity objects, or a
// flat [value, unit, value, unit, ...] list.
func decodePairs(data []byte) ([]Quantity, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	if data[0] == '{' {
		var p plainQuantity
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("invalid quantity: %w", err)
		}
		return []Quantity{Quantity(p)}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("invalid quantity: %w", err)
	}

	if len(items) > 0 && bytes.HasPrefix(bytes.TrimSpace(items[0]), []byte("{")) {
		pairs := make([]Quantity, 0, len(items))
		for i, item := range items {
			var p plainQuantity
			if err := json.Unmarshal(item, &p); err != nil {
				return nil, fmt.Errorf("invalid quantity at position %d: %w", i, err)
			}
			pairs = append(pairs, Quantity(p))
		}
		return pairs, nil
	}

	if len(items) == 0 || len(items)%2 != 0 {
		return nil, fmt.Errorf("invalid quantity: expected value/unit pairs, got %d elements", len(items))
	}

	pairs := make([]Quantity, 0, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		var value float64
		if err := json.Unmarshal(items[i], &value); err != nil {
			return nil, fmt.Errorf("invalid quantity value at position %d: %w", i, err)
		}
		var unit string
		if err := json.Unmarshal(items[i+1], &unit); err != nil {
			return nil, fmt.Errorf("invalid quantity unit at position %d: %w", i+1, err)
		}
		pairs = append(pairs, Quantity{Value: value, Unit: strings.TrimSpace(unit)})
	}
	return pairs, nil
}
