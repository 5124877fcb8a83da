package calculators

import (
	"fmt"

	"github.com/giygas/medcalc/calculators/entities"
	"github.com/giygas/medcalc/units"
	"github.com/giygas/medcalc/validation"
)

// HomaIR computes the homeostatic model assessment of insulin resistance.
func HomaIR(p entities.HomaIRParams) (entities.Result, error) {
	if p.Insulin == nil {
		return entities.Result{}, validation.Missing("insulin")
	}
	if p.Glucose == nil {
		return entities.Result{}, validation.Missing("glucose")
	}

	insulinText, insulin, err := units.InsulinToMicroUnits(*p.Insulin)
	if err != nil {
		return entities.Result{}, fmt.Errorf("insulin: %w", err)
	}
	glucoseText, glucose, err := units.ConvertConcentration(p.Glucose.Value, units.Substances["glucose"], p.Glucose.Unit, "mg/dL")
	if err != nil {
		return entities.Result{}, fmt.Errorf("glucose: %w", err)
	}
	if insulin < 0 {
		return entities.Result{}, validation.OutOfRange("insulin", p.Insulin.Value)
	}
	if glucose < 0 {
		return entities.Result{}, validation.OutOfRange("glucose", p.Glucose.Value)
	}

	e := &explanation{}
	e.add("The formula for computing HOMA-IR score is (insulin (µIU/mL) * glucose mg/dL)/405.\n")
	e.add(insulinText + "\n")
	e.add(glucoseText + "\n")

	answer := units.Round(insulin * glucose / 405)
	e.addf("Plugging into the formula will give us %s * %s/405 = %s. ", num(insulin), num(glucose), num(answer))
	e.addf("Hence, the patient's HOMA-IR score is %s.\n", num(answer))
	return e.result(answer), nil
}
