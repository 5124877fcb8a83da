package calculators

import (
	"github.com/giygas/medcalc/calculators/entities"
	"github.com/giygas/medcalc/units"
)

// idealBodyWeight applies the Devine formula to a height in inches.
func idealBodyWeight(e *explanation, sex entities.Sex, inches float64) float64 {
	base, group := 50.0, "males"
	if sex == entities.Female {
		base, group = 45.5, "females"
	}
	ibw := units.Round(base + 2.3*(inches-60))
	e.addf("For %s, the ideal body weight (IBW) is calculated as follows:\n"+
		"IBW = %s kg + 2.3 kg * (height (in inches) - 60)\n"+
		"Plugging in the values gives us %s kg + 2.3 kg * (%s (in inches) - 60) = %s kg.\n",
		group, num(base), num(base), num(inches), num(ibw))
	return ibw
}

// IdealBodyWeight computes the ideal body weight in kilograms.
func IdealBodyWeight(p entities.IdealBodyWeightParams) (entities.Result, error) {
	sex, err := requireSex("sex", p.Sex)
	if err != nil {
		return entities.Result{}, err
	}
	heightText, inches, err := requireHeight("height", p.Height, units.HeightToInches)
	if err != nil {
		return entities.Result{}, err
	}

	e := &explanation{}
	e.addf("The patient's gender is %s.\n", sex)
	e.add(heightText + "\n")
	ibw := idealBodyWeight(e, sex, inches)
	e.addf("Hence, the patient's IBW is %s kg.\n", num(ibw))
	return e.result(ibw), nil
}

// AdjustedBodyWeight computes the adjusted body weight in kilograms from
// the ideal body weight and the actual weight.
func AdjustedBodyWeight(p entities.AdjustedBodyWeightParams) (entities.Result, error) {
	sex, err := requireSex("sex", p.Sex)
	if err != nil {
		return entities.Result{}, err
	}
	heightText, inches, err := requireHeight("height", p.Height, units.HeightToInches)
	if err != nil {
		return entities.Result{}, err
	}
	weightText, weight, err := requireWeight("weight", p.Weight)
	if err != nil {
		return entities.Result{}, err
	}

	e := &explanation{}
	e.addf("The patient's gender is %s.\n", sex)
	e.add(heightText + "\n")
	ibw := idealBodyWeight(e, sex, inches)
	e.addf("Hence, the patient's IBW is %s kg.\n", num(ibw))
	e.add(weightText)

	abw := units.Round(ibw + 0.4*(weight-ibw))
	e.addf("To compute the ABW value, apply the following formula: ABW = IBW + 0.4 * (weight (in kg) - IBW (in kg)). "+
		"ABW = %s kg + 0.4 * (%s kg - %s kg) = %s kg. ", num(ibw), num(weight), num(ibw), num(abw))
	e.addf("The patient's adjusted body weight is %s kg.\n", num(abw))
	return e.result(abw), nil
}

// BMI computes the body mass index in kg/m^2.
func BMI(p entities.BMIParams) (entities.Result, error) {
	heightText, meters, err := requireHeight("height", p.Height, units.HeightToMeters)
	if err != nil {
		return entities.Result{}, err
	}
	weightText, weight, err := requireWeight("weight", p.Weight)
	if err != nil {
		return entities.Result{}, err
	}

	e := &explanation{}
	e.add("The formula for computing the patient's BMI is (weight)/(height * height), " +
		"where weight is the patient's weight in kg and height is the patient's height in m.\n")
	e.add(heightText)
	e.add(weightText)

	bmi := units.Round(weight / (meters * meters))
	e.addf("The patient's bmi is therefore %s kg / (%s m * %s m) = %s kg/m^2.\n", num(weight), num(meters), num(meters), num(bmi))
	return e.result(bmi), nil
}
