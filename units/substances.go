package units

import (
	"fmt"
	"sort"
)

// Substances lists the analytes the calculators convert, keyed by their
// normalized name.
var Substances = map[string]Substance{
	"sodium":            {Name: "sodium", MolarMass: 22.99, Valence: 1},
	"potassium":         {Name: "potassium", MolarMass: 39.098, Valence: 1},
	"chloride":          {Name: "chloride", MolarMass: 35.45, Valence: 1},
	"bicarbonate":       {Name: "bicarbonate", MolarMass: 61.02, Valence: 1},
	"calcium":           {Name: "calcium", MolarMass: 40.08, Valence: 2},
	"magnesium":         {Name: "magnesium", MolarMass: 24.305, Valence: 2},
	"glucose":           {Name: "glucose", MolarMass: 180.16},
	"albumin":           {Name: "albumin", MolarMass: 66500},
	"hemoglobin":        {Name: "hemoglobin", MolarMass: 64500},
	"creatinine":        {Name: "creatinine", MolarMass: 113.12},
	"bun":               {Name: "BUN", MolarMass: 28.02},
	"bilirubin":         {Name: "bilirubin", MolarMass: 584.66},
	"total cholesterol": {Name: "total cholesterol", MolarMass: 386.65},
	"hdl cholesterol":   {Name: "hdl cholesterol", MolarMass: 386.65},
	"triglycerides":     {Name: "triglycerides", MolarMass: 861.338},
}

// LookupSubstance finds a substance by name, ignoring case, width and
// surrounding whitespace.
func LookupSubstance(name string) (Substance, error) {
	if s, ok := Substances[NormalizeToken(name)]; ok {
		return s, nil
	}
	return Substance{}, fmt.Errorf("unknown substance %q", name)
}

// SubstanceNames returns the table keys in sorted order.
func SubstanceNames() []string {
	names := make([]string, 0, len(Substances))
	for name := range Substances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
