package units

import "fmt"

var massUnits = newAliasTable(map[string][]string{
	"lbs": {"lb", "pound", "pounds"},
	"g":   {"gram", "grams"},
	"kg":  {"kilogram", "kilograms", "kgs"},
})

// WeightToKilograms normalises a body weight to kilograms.
func WeightToKilograms(q Quantity) (string, float64, error) {
	unit, ok := massUnits.lookup(q.Unit)
	if !ok {
		return "", 0, unrecognizedUnit("weight", q.Unit)
	}
	v := FormatNumber(q.Value)

	switch unit {
	case "lbs":
		kg := Round(q.Value * 0.453592)
		return fmt.Sprintf("The patient's weight is %s lbs so this converts to %s lbs * 0.453592 kg/lbs = %s kg. ",
			v, v, FormatNumber(kg)), kg, nil
	case "g":
		kg := Round(q.Value / 1000)
		return fmt.Sprintf("The patient's weight is %s g so this converts to %s g * 1 kg/1000 g = %s kg. ",
			v, v, FormatNumber(kg)), kg, nil
	default:
		return fmt.Sprintf("The patient's weight is %s kg. ", v), q.Value, nil
	}
}
