package units

import "fmt"

var temperatureUnits = newAliasTable(map[string][]string{
	"degrees celsius":    {"°C", "C", "celsius", "degree celsius", "deg C"},
	"degrees fahrenheit": {"°F", "F", "fahrenheit", "degree fahrenheit", "deg F"},
})

// TemperatureToCelsius normalises a body temperature to degrees celsius.
func TemperatureToCelsius(q Quantity) (string, float64, error) {
	unit, ok := temperatureUnits.lookup(q.Unit)
	if !ok {
		return "", 0, unrecognizedUnit("temperature", q.Unit)
	}
	v := FormatNumber(q.Value)

	if unit == "degrees celsius" {
		return fmt.Sprintf("The patient's temperature is %s degrees celsius. ", v), q.Value, nil
	}

	shifted := Round(q.Value - 32)
	celsius := Round(shifted * 5 / 9)
	return fmt.Sprintf("The patient's temperature is %s degrees fahrenheit. "+
		"To convert to degrees celsius, apply the formula 5/9 * [temperature (degrees fahrenheit) - 32]. "+
		"This means that the patient's temperature is 5/9 * %s = %s degrees celsius. ",
		v, FormatNumber(shifted), FormatNumber(celsius)), celsius, nil
}
