package units

import (
	"fmt"
	"math"
	"strings"
)

// Substance describes what is being measured. MolarMass is in g/mol and
// Valence is the ionic charge; zero means not known.
type Substance struct {
	Name      string
	MolarMass float64
	Valence   int
}

type amountKind int

const (
	kindMass amountKind = iota
	kindMolar
	kindEquivalent
)

func (k amountKind) String() string {
	switch k {
	case kindMass:
		return "mass"
	case kindMolar:
		return "moles"
	default:
		return "equivalents"
	}
}

// amountUnit is a mass, molar or equivalent unit; exp is its power of
// ten relative to g, mol or Eq.
type amountUnit struct {
	symbol string
	kind   amountKind
	exp    int
}

var amountCatalog = []amountUnit{
	{"kg", kindMass, 3},
	{"g", kindMass, 0},
	{"mg", kindMass, -3},
	{"µg", kindMass, -6},
	{"ng", kindMass, -9},
	{"mol", kindMolar, 0},
	{"mmol", kindMolar, -3},
	{"µmol", kindMolar, -6},
	{"nmol", kindMolar, -9},
	{"pmol", kindMolar, -12},
	{"Eq", kindEquivalent, 0},
	{"mEq", kindEquivalent, -3},
	{"µEq", kindEquivalent, -6},
}

var amountAliases = newAliasTable(map[string][]string{
	"kg":   {},
	"g":    {"gram", "grams"},
	"mg":   {},
	"µg":   {"ug", "mcg"},
	"ng":   {},
	"mol":  {},
	"mmol": {},
	"µmol": {"umol"},
	"nmol": {},
	"pmol": {},
	"Eq":   {},
	"mEq":  {},
	"µEq":  {"ueq"},
})

// volumeUnit exp is the power of ten relative to one liter.
type volumeUnit struct {
	symbol string
	exp    int
}

var volumeCatalog = map[string]volumeUnit{
	"L":  {"L", 0},
	"dL": {"dL", -1},
	"mL": {"mL", -3},
	"µL": {"µL", -6},
}

var volumeAliases = newAliasTable(map[string][]string{
	"L":  {"liter", "liters", "litre", "litres"},
	"dL": {"deciliter", "deciliters"},
	"mL": {"cc", "milliliter", "milliliters"},
	"µL": {"ul"},
})

func findAmount(symbol string) (amountUnit, bool) {
	for _, u := range amountCatalog {
		if u.symbol == symbol {
			return u, true
		}
	}
	return amountUnit{}, false
}

func amountAt(kind amountKind, exp int) (amountUnit, bool) {
	for _, u := range amountCatalog {
		if u.kind == kind && u.exp == exp {
			return u, true
		}
	}
	return amountUnit{}, false
}

type concentrationUnit struct {
	amount amountUnit
	volume *volumeUnit
}

func (c concentrationUnit) String() string {
	if c.volume == nil {
		return c.amount.symbol
	}
	return c.amount.symbol + "/" + c.volume.symbol
}

func parseConcentrationUnit(unit string) (concentrationUnit, error) {
	numerator, denominator, hasVolume := strings.Cut(unit, "/")
	if strings.Contains(denominator, "/") {
		return concentrationUnit{}, unrecognizedUnit("concentration", unit)
	}

	symbol, ok := amountAliases.lookup(numerator)
	if !ok {
		return concentrationUnit{}, unrecognizedUnit("concentration", unit)
	}
	amount, _ := findAmount(symbol)
	parsed := concentrationUnit{amount: amount}

	if hasVolume {
		symbol, ok := volumeAliases.lookup(denominator)
		if !ok {
			return concentrationUnit{}, unrecognizedUnit("concentration", unit)
		}
		volume := volumeCatalog[symbol]
		parsed.volume = &volume
	}
	return parsed, nil
}

// kindPath lists the kinds crossed when converting between two kinds;
// mass and equivalents are only related through moles.
func kindPath(from, to amountKind) []amountKind {
	if from == to {
		return nil
	}
	if from == kindMolar || to == kindMolar {
		return []amountKind{to}
	}
	return []amountKind{kindMolar, to}
}

// conversion accumulates the sentences and the running value of one
// ConvertConcentration call.
type conversion struct {
	substance Substance
	value     float64
	unit      amountUnit
	parts     []string
}

func (c *conversion) say(format string, args ...any) {
	c.parts = append(c.parts, fmt.Sprintf(format, args...))
}

func (c *conversion) rescale(target amountUnit) {
	if c.unit.symbol == target.symbol {
		return
	}
	factor := math.Pow10(c.unit.exp - target.exp)
	next := Round(c.value * factor)
	c.say("%s %s * %s %s/%s = %s %s. ",
		FormatNumber(c.value), c.unit.symbol, FormatNumber(factor), target.symbol, c.unit.symbol,
		FormatNumber(next), target.symbol)
	c.value, c.unit = next, target
}

func (c *conversion) changeKind(kind amountKind, target amountUnit) error {
	name := c.substance.Name
	from := c.unit
	v := FormatNumber(c.value)

	switch {
	case from.kind == kindMass && kind == kindMolar:
		if c.substance.MolarMass <= 0 {
			return fmt.Errorf("%w: cannot convert %s of %s to %s", ErrMissingMolarMass, from.symbol, name, target.symbol)
		}
		m := FormatNumber(c.substance.MolarMass)
		next := Round(c.value / c.substance.MolarMass)
		c.say("To convert %s %s of %s to %s, divide by the molar mass %s g/%s, which is %s %s/%s: %s %s / %s %s/%s = %s %s %s. ",
			v, from.symbol, name, target.symbol, m, "mol", m, from.symbol, target.symbol,
			v, from.symbol, m, from.symbol, target.symbol, FormatNumber(next), target.symbol, name)
		c.value = next

	case from.kind == kindMolar && kind == kindMass:
		if c.substance.MolarMass <= 0 {
			return fmt.Errorf("%w: cannot convert %s of %s to %s", ErrMissingMolarMass, from.symbol, name, target.symbol)
		}
		m := FormatNumber(c.substance.MolarMass)
		next := Round(c.value * c.substance.MolarMass)
		c.say("To convert %s %s of %s to %s, multiply by the molar mass %s g/mol, which is %s %s/%s: %s %s * %s %s/%s = %s %s %s. ",
			v, from.symbol, name, target.symbol, m, m, target.symbol, from.symbol,
			v, from.symbol, m, target.symbol, from.symbol, FormatNumber(next), target.symbol, name)
		c.value = next

	case from.kind == kindMolar && kind == kindEquivalent:
		if c.substance.Valence <= 0 {
			return fmt.Errorf("%w: cannot convert %s of %s to %s", ErrMissingValence, from.symbol, name, target.symbol)
		}
		val := c.substance.Valence
		next := Round(c.value * float64(val))
		c.say("The compound %s has a valence of %d, and so multiply the value of %s by the valence to get %s %s * %d %s/%s = %s %s %s. ",
			name, val, from.symbol, v, from.symbol, val, target.symbol, from.symbol, FormatNumber(next), target.symbol, name)
		c.value = next

	case from.kind == kindEquivalent && kind == kindMolar:
		if c.substance.Valence <= 0 {
			return fmt.Errorf("%w: cannot convert %s of %s to %s", ErrMissingValence, from.symbol, name, target.symbol)
		}
		val := c.substance.Valence
		next := Round(c.value / float64(val))
		c.say("The compound %s has a valence of %d, and so divide the value of %s by the valence to get %s %s/(%d %s/%s) = %s %s %s. ",
			name, val, from.symbol, v, from.symbol, val, from.symbol, target.symbol, FormatNumber(next), target.symbol, name)
		c.value = next
	}

	c.unit = target
	return nil
}

// convertAmount walks from the current unit to target. Each change of
// kind happens at the smaller of the current and target powers of ten
// where both kinds have a unit, so rounding drops as little as possible.
func (c *conversion) convertAmount(target amountUnit) error {
	for _, kind := range kindPath(c.unit.kind, target.kind) {
		exp := 0
		for _, candidate := range []int{min(c.unit.exp, target.exp), max(c.unit.exp, target.exp)} {
			_, fromOK := amountAt(c.unit.kind, candidate)
			_, toOK := amountAt(kind, candidate)
			if fromOK && toOK {
				exp = candidate
				break
			}
		}
		base, _ := amountAt(c.unit.kind, exp)
		c.rescale(base)
		next, _ := amountAt(kind, exp)
		if err := c.changeKind(kind, next); err != nil {
			return err
		}
	}
	c.rescale(target)
	return nil
}

func (c *conversion) convertVolume(from, to volumeUnit) {
	// source volumes per target volume
	factor := math.Pow10(to.exp - from.exp)
	next := Round(c.value * factor)
	c.say("The volume units need to be converted from %s to %s: 1 %s = %s %s, so %s %s/%s * %s %s/%s = %s %s/%s. ",
		from.symbol, to.symbol, to.symbol, FormatNumber(factor), from.symbol,
		FormatNumber(c.value), c.unit.symbol, from.symbol, FormatNumber(factor), from.symbol, to.symbol,
		FormatNumber(next), c.unit.symbol, to.symbol)
	c.value = next
}

// ConvertConcentration converts value of substance from one unit to
// another. Units are an amount (mass, moles or equivalents), optionally
// over a volume, such as "mg/dL", "mmol/L" or "mEq". Mass and moles are
// related by the molar mass, moles and equivalents by the valence.
//
// A volume change that enlarges the value is applied before the amount
// conversion and one that shrinks it after, which keeps more significant
// digits through the rounded intermediate steps.
func ConvertConcentration(value float64, substance Substance, from, to string) (string, float64, error) {
	src, err := parseConcentrationUnit(from)
	if err != nil {
		return "", 0, err
	}
	dst, err := parseConcentrationUnit(to)
	if err != nil {
		return "", 0, err
	}
	if (src.volume == nil) != (dst.volume == nil) {
		return "", 0, fmt.Errorf("%w: cannot convert between %q and %q", ErrUnrecognizedUnit, from, to)
	}

	name := substance.Name
	v := FormatNumber(value)

	if src.String() == dst.String() {
		if src.volume == nil {
			return fmt.Sprintf("The amount of %s is %s %s. ", name, v, src), value, nil
		}
		return fmt.Sprintf("The concentration of %s is %s %s. ", name, v, src), value, nil
	}

	c := &conversion{substance: substance, value: value, unit: src.amount}

	if src.volume == nil {
		c.say("The amount of %s is %s %s. We need to convert it to %s. ", name, v, src, dst)
		if err := c.convertAmount(dst.amount); err != nil {
			return "", 0, err
		}
		c.say("Hence, %s %s of %s is %s %s. ", v, src, name, FormatNumber(c.value), dst)
		return strings.Join(c.parts, ""), c.value, nil
	}

	c.say("The concentration of %s is %s %s. We need to convert the concentration to %s. ", name, v, src, dst)

	sameVolume := src.volume.symbol == dst.volume.symbol
	volumeFirst := !sameVolume && dst.volume.exp > src.volume.exp
	if volumeFirst {
		c.convertVolume(*src.volume, *dst.volume)
	}

	if src.amount.symbol != dst.amount.symbol {
		c.say("The %s of %s is converted from %s to %s. ", src.amount.kind, name, src.amount.symbol, dst.amount.symbol)
		if err := c.convertAmount(dst.amount); err != nil {
			return "", 0, err
		}
	}

	switch {
	case sameVolume:
		c.say("The volume units is %s so no volume conversion is needed. ", src.volume.symbol)
	case !volumeFirst:
		c.convertVolume(*src.volume, *dst.volume)
	}

	c.say("Hence, the concentration value of %s %s %s/%s converts to %s %s %s/%s. ",
		v, src.amount.symbol, name, src.volume.symbol, FormatNumber(c.value), dst.amount.symbol, name, dst.volume.symbol)
	return strings.Join(c.parts, ""), c.value, nil
}
