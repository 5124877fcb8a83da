package units

import (
	"fmt"
)

var lengthUnits = newAliasTable(map[string][]string{
	"m":  {"meter", "meters", "metre", "metres"},
	"cm": {"centimeter", "centimeters", "centimetre", "centimetres"},
	"ft": {"foot", "feet"},
	"in": {"inch", "inches"},
})

// heightParts resolves the units of a height. A compound height is
// returned as feet and inches with compound set.
func heightParts(h Height) (value float64, unit string, inches float64, compound bool, err error) {
	switch len(h) {
	case 1:
		unit, ok := lengthUnits.lookup(h[0].Unit)
		if !ok {
			return 0, "", 0, false, unrecognizedUnit("height", h[0].Unit)
		}
		return h[0].Value, unit, 0, false, nil
	case 2:
		first, ok1 := lengthUnits.lookup(h[0].Unit)
		second, ok2 := lengthUnits.lookup(h[1].Unit)
		if !ok1 || !ok2 || first != "ft" || second != "in" {
			return 0, "", 0, false, fmt.Errorf("%w: compound height must be feet followed by inches, got %q and %q",
				ErrUnrecognizedUnit, h[0].Unit, h[1].Unit)
		}
		return h[0].Value, "ft", h[1].Value, true, nil
	default:
		return 0, "", 0, false, fmt.Errorf("%w: height needs one value/unit pair or feet and inches, got %d pairs",
			ErrUnrecognizedUnit, len(h))
	}
}

// HeightToMeters normalises a height to meters.
func HeightToMeters(h Height) (string, float64, error) {
	value, unit, inches, compound, err := heightParts(h)
	if err != nil {
		return "", 0, err
	}
	v := FormatNumber(value)

	if compound {
		total := Round(value*12 + inches)
		meters := Round(total * 0.0254)
		return fmt.Sprintf("The patient's height is %s ft %s in which converts to %s ft * 12 in/ft + %s in = %s in. "+
			"Hence, the patient's height is %s in * 0.0254 m/in = %s m. ",
			v, FormatNumber(inches), v, FormatNumber(inches), FormatNumber(total), FormatNumber(total), FormatNumber(meters)), meters, nil
	}

	switch unit {
	case "m":
		return fmt.Sprintf("The patient's height is %s m. ", v), value, nil
	case "cm":
		meters := Round(value / 100)
		return fmt.Sprintf("The patient's height is %s cm, which is %s cm * 1 m / 100 cm = %s m. ",
			v, v, FormatNumber(meters)), meters, nil
	case "ft":
		meters := Round(value * 0.3048)
		return fmt.Sprintf("The patient's height is %s ft, which is %s ft * 0.3048 m / ft = %s m. ",
			v, v, FormatNumber(meters)), meters, nil
	default:
		meters := Round(value * 0.0254)
		return fmt.Sprintf("The patient's height is %s in, which is %s in * 0.0254 m / in = %s m. ",
			v, v, FormatNumber(meters)), meters, nil
	}
}

// HeightToCentimeters normalises a height to centimeters.
func HeightToCentimeters(h Height) (string, float64, error) {
	value, unit, inches, compound, err := heightParts(h)
	if err != nil {
		return "", 0, err
	}
	v := FormatNumber(value)

	if compound {
		total := Round(value*12 + inches)
		cm := Round(total * 2.54)
		return fmt.Sprintf("The patient's height is %s ft %s in which converts to %s ft * 12 in/ft + %s in = %s in. "+
			"Hence, the patient's height is %s in * 2.54 cm/in = %s cm. ",
			v, FormatNumber(inches), v, FormatNumber(inches), FormatNumber(total), FormatNumber(total), FormatNumber(cm)), cm, nil
	}

	switch unit {
	case "m":
		cm := Round(value * 100)
		return fmt.Sprintf("The patient's height is %s m, which is %s m * 100 cm/m = %s cm. ",
			v, v, FormatNumber(cm)), cm, nil
	case "cm":
		return fmt.Sprintf("The patient's height is %s cm. ", v), value, nil
	case "ft":
		cm := Round(value * 30.48)
		return fmt.Sprintf("The patient's height is %s ft, which is %s ft * 30.48 cm/ft = %s cm. ",
			v, v, FormatNumber(cm)), cm, nil
	default:
		cm := Round(value * 2.54)
		return fmt.Sprintf("The patient's height is %s in, which is %s in * 2.54 cm/in = %s cm. ",
			v, v, FormatNumber(cm)), cm, nil
	}
}

// HeightToInches normalises a height to inches.
func HeightToInches(h Height) (string, float64, error) {
	value, unit, inches, compound, err := heightParts(h)
	if err != nil {
		return "", 0, err
	}
	v := FormatNumber(value)

	if compound {
		total := Round(value*12 + inches)
		return fmt.Sprintf("The patient's height is %s ft %s in which converts to %s ft * 12 in/ft + %s in = %s in. "+
			"Hence, the patient's height is %s in. ",
			v, FormatNumber(inches), v, FormatNumber(inches), FormatNumber(total), FormatNumber(total)), total, nil
	}

	switch unit {
	case "m":
		in := Round(value * 39.3701)
		return fmt.Sprintf("The patient's height is %s m, which is %s m * 39.3701 in/m = %s in. ",
			v, v, FormatNumber(in)), in, nil
	case "cm":
		in := Round(value * 0.393701)
		return fmt.Sprintf("The patient's height is %s cm, which is %s cm * 0.393701 in/cm = %s in. ",
			v, v, FormatNumber(in)), in, nil
	case "ft":
		in := Round(value * 12)
		return fmt.Sprintf("The patient's height is %s ft, which is %s ft * 12 in/ft = %s in. ",
			v, v, FormatNumber(in)), in, nil
	default:
		return fmt.Sprintf("The patient's height is %s in. ", v), value, nil
	}
}
