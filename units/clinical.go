package units

import "fmt"

var heartRateUnits = newAliasTable(map[string][]string{
	"beats per minute": {"bpm", "beats/min", "beat per minute", "/min"},
})

var intervalUnits = newAliasTable(map[string][]string{
	"msec": {"ms", "millisecond", "milliseconds"},
})

var insulinUnits = newAliasTable(map[string][]string{
	"µIU/mL": {"uIU/mL", "mIU/L", "mcIU/mL"},
	"pmol/L": {"pmol per L"},
	"ng/mL":  {"ng per mL"},
})

// insulinFactors converts each insulin unit to µIU/mL.
var insulinFactors = map[string]float64{
	"µIU/mL": 1,
	"pmol/L": 6,
	"ng/mL":  24.8,
}

// HeartRateValue returns a heart rate given in beats per minute.
func HeartRateValue(q Quantity) (float64, error) {
	if _, ok := heartRateUnits.lookup(q.Unit); !ok {
		return 0, unrecognizedUnit("heart rate", q.Unit)
	}
	return q.Value, nil
}

// IntervalValue returns an ECG interval given in milliseconds.
func IntervalValue(q Quantity) (float64, error) {
	if _, ok := intervalUnits.lookup(q.Unit); !ok {
		return 0, unrecognizedUnit("interval", q.Unit)
	}
	return q.Value, nil
}

// InsulinToMicroUnits normalises an insulin concentration to µIU/mL
// using fixed factors: pmol/L * 6 and ng/mL * 24.8.
func InsulinToMicroUnits(q Quantity) (string, float64, error) {
	unit, ok := insulinUnits.lookup(q.Unit)
	if !ok {
		return "", 0, unrecognizedUnit("insulin", q.Unit)
	}
	v := FormatNumber(q.Value)
	factor := insulinFactors[unit]
	if factor == 1 {
		return fmt.Sprintf("The concentration of insulin is %s µIU/mL. ", v), q.Value, nil
	}

	insulin := Round(q.Value * factor)
	return fmt.Sprintf("The concentration of insulin is %s %s. We need to convert the concentration of insulin to µIU/mL "+
		"by multiplying by the conversion factor of %s µIU/mL per %s. "+
		"This makes the insulin concentration %s * %s = %s µIU/mL. ",
		v, unit, FormatNumber(factor), unit, v, FormatNumber(factor), FormatNumber(insulin)), insulin, nil
}
