package calculators

import (
	"fmt"

	"github.com/giygas/medcalc/calculators/entities"
	"github.com/giygas/medcalc/units"
	"github.com/giygas/medcalc/validation"
)

// totalBodyWater returns the total body water fraction for an age and
// sex, and the sentence that justifies it.
func totalBodyWater(age float64, sex entities.Sex) (float64, string) {
	switch {
	case age < 18:
		return 0.6, "The patient is less than 18 years old and so the patient is a child. " +
			"This means total body water percentage value is 0.6.\n"
	case age < 65 && sex == entities.Male:
		return 0.6, "The patient's age is between 18 and 64 and so the patient is an adult. " +
			"For adult males, the total body water percentage value is 0.60.\n"
	case age < 65:
		return 0.5, "The patient's age is between 18 and 64 and so the patient is an adult. " +
			"For adult females, the total body water percentage value is 0.50.\n"
	case sex == entities.Male:
		return 0.5, "The patient's age is greater than 64 years and so the patient is considered elderly. " +
			"For elderly males, the total body water percentage value is 0.50.\n"
	default:
		return 0.45, "The patient's age is greater than 64 years and so the patient is considered elderly. " +
			"For elderly females, the total body water percentage value is 0.45.\n"
	}
}

// FreeWaterDeficit computes the free water deficit in liters.
func FreeWaterDeficit(p entities.FreeWaterDeficitParams) (entities.Result, error) {
	sex, err := requireSex("sex", p.Sex)
	if err != nil {
		return entities.Result{}, err
	}
	ageText, age, err := requireAge("age", p.Age)
	if err != nil {
		return entities.Result{}, err
	}
	weightText, weight, err := requireWeight("weight", p.Weight)
	if err != nil {
		return entities.Result{}, err
	}
	if p.Sodium == nil {
		return entities.Result{}, validation.Missing("sodium")
	}
	sodiumText, sodium, err := units.ConvertConcentration(p.Sodium.Value, units.Substances["sodium"], p.Sodium.Unit, "mmol/L")
	if err != nil {
		return entities.Result{}, fmt.Errorf("sodium: %w", err)
	}

	e := &explanation{}
	e.add("The formula for computing the free water deficit is (total body water percentage) * (weight) * (sodium/140 - 1), " +
		"where the total body water percentage is a percentage expressed as a decimal, weight is in kg, " +
		"and the sodium concentration is in mmol/L.\n")
	e.add("The patient's total body water percentage is based on the patient's age and gender.\n")
	e.add(ageText)
	e.addf("The patient is %s.\n", sex)

	tbw, tbwText := totalBodyWater(age, sex)
	e.add(tbwText)
	e.add(weightText)
	e.add(sodiumText)

	deficit := units.Round(tbw * weight * (sodium/140 - 1))
	e.addf("Plugging in these values into the equation, we get %s * %s * (%s/140 - 1) = %s L. ",
		num(tbw), num(weight), num(sodium), num(deficit))
	e.addf("The patient's free body water deficit is %s L.\n", num(deficit))
	return e.result(deficit), nil
}
