package units

var bmiUnits = newAliasTable(map[string][]string{
	"kg/m^2": {"kg/m2", "kg/m²", "kg per m2"},
})

// BMIValue returns a body mass index given in kg/m^2.
func BMIValue(q Quantity) (float64, error) {
	if _, ok := bmiUnits.lookup(q.Unit); !ok {
		return 0, unrecognizedUnit("body mass index", q.Unit)
	}
	return q.Value, nil
}
