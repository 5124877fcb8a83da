package units

import (
	"fmt"
	"math"
	"strings"
)

var ageUnits = newAliasTable(map[string][]string{
	"years":  {"year", "yr", "yrs", "y"},
	"months": {"month", "mo", "mos"},
	"weeks":  {"week", "wk", "wks"},
	"days":   {"day", "d"},
})

// yearsPer is how many of each unit make up one year when an age is
// floored to whole years.
var yearsPer = map[string]float64{
	"months": 12,
	"weeks":  52,
}

func ageUnitLabel(unit string, value float64) string {
	if value == 1 {
		return strings.TrimSuffix(unit, "s")
	}
	return unit
}

// AgeToYears normalises an age to years. A single pair in years is
// returned as given; any other composition is floored to whole years,
// with days contributing nothing.
func AgeToYears(a Age) (string, float64, error) {
	if len(a) == 0 {
		return "", 0, fmt.Errorf("%w: age has no value/unit pair", ErrUnrecognizedUnit)
	}

	kinds := make([]string, len(a))
	for i, q := range a {
		unit, ok := ageUnits.lookup(q.Unit)
		if !ok {
			return "", 0, unrecognizedUnit("age", q.Unit)
		}
		kinds[i] = unit
	}

	if len(a) == 1 && kinds[0] == "years" {
		return fmt.Sprintf("The patient is %s %s old. ", FormatNumber(a[0].Value), ageUnitLabel("years", a[0].Value)), a[0].Value, nil
	}

	if len(a) == 1 && kinds[0] == "months" {
		months := a[0].Value
		years := math.Floor(months / 12)
		rest := Round(months - years*12)
		return fmt.Sprintf("The patient is %s %s old. This means the patient is %s %s and %s %s old. ",
			FormatNumber(months), ageUnitLabel("months", months),
			FormatNumber(years), ageUnitLabel("years", years),
			FormatNumber(rest), ageUnitLabel("months", rest)), years, nil
	}

	var total float64
	parts := make([]string, len(a))
	for i, q := range a {
		parts[i] = FormatNumber(q.Value) + " " + ageUnitLabel(kinds[i], q.Value)
		switch kinds[i] {
		case "years":
			total += q.Value
		case "days":
		default:
			total += math.Floor(q.Value / yearsPer[kinds[i]])
		}
	}
	years := math.Floor(total)

	var text string
	switch len(parts) {
	case 1:
		text = parts[0]
	case 2:
		text = parts[0] + " and " + parts[1]
	default:
		text = strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
	return fmt.Sprintf("The patient is %s old. This means the patient is %s %s old. ",
		text, FormatNumber(years), ageUnitLabel("years", years)), years, nil
}
