package calculators

import (
	"strings"

	"github.com/giygas/medcalc/calculators/entities"
)

const heartRubric = "The HEART Score for risk stratification in patients with chest pain is shown below:\n" +
	"1. History: Slightly suspicious = 0 points, Moderately suspicious = +1 point, Highly suspicious = +2 points\n" +
	"2. EKG: Normal = 0 points, Non-specific repolarization disturbance = +1 point, Significant ST deviation = +2 points\n" +
	"3. Age: <45 years = 0 points, 45-64 years = +1 point, ≥65 years = +2 points\n" +
	"4. Risk factors (HTN, hypercholesterolemia, DM, obesity (BMI >30 kg/m²), smoking (current or cessation within 3 months), " +
	"positive family history of cardiovascular disease before age 65, atherosclerotic disease such as prior MI, PCI/CABG, " +
	"CVA/TIA, or peripheral arterial disease): No known risk factors = 0 points, 1-2 risk factors = +1 point, " +
	"≥3 risk factors or history of atherosclerotic disease = +2 points\n" +
	"5. Initial troponin level: ≤normal limit = 0 points, 1-3x normal limit = +1 point, >3x normal limit = +2 points\n" +
	"The total score is calculated by summing the points for each criterion.\n\n"

type heartRiskFactor struct {
	field string
	label string
	value func(p *entities.HeartParams) *bool
}

var heartRiskFactors = []heartRiskFactor{
	{"hypertension", "hypertension", func(p *entities.HeartParams) *bool { return p.Hypertension }},
	{"hypercholesterolemia", "hypercholesterolemia", func(p *entities.HeartParams) *bool { return p.Hypercholesterolemia }},
	{"diabetes_mellitus", "diabetes mellitus", func(p *entities.HeartParams) *bool { return p.DiabetesMellitus }},
	{"obesity", "obesity", func(p *entities.HeartParams) *bool { return p.Obesity }},
	{"smoking", "smoking", func(p *entities.HeartParams) *bool { return p.Smoking }},
	{"family_with_cvd", "family history of cardiovascular disease", func(p *entities.HeartParams) *bool { return p.FamilyWithCVD }},
	{"atherosclerotic_disease", "atherosclerotic disease", func(p *entities.HeartParams) *bool { return p.AtheroscleroticDisease }},
}

// Heart computes the HEART score for major cardiac events in chest pain.
func Heart(p entities.HeartParams) (entities.Result, error) {
	ageText, age, err := requireAge("age", p.Age)
	if err != nil {
		return entities.Result{}, err
	}

	history := entities.SlightlySuspicious
	if p.History != "" {
		if history, err = entities.ParseHistorySuspicion("history", p.History); err != nil {
			return entities.Result{}, err
		}
	}
	ecg := entities.ECGNormal
	if p.Electrocardiogram != "" {
		if ecg, err = entities.ParseECGFinding("electrocardiogram", p.Electrocardiogram); err != nil {
			return entities.Result{}, err
		}
	}
	troponin := entities.TroponinNormal
	if p.InitialTroponin != "" {
		if troponin, err = entities.ParseTroponinLevel("initial_troponin", p.InitialTroponin); err != nil {
			return entities.Result{}, err
		}
	}

	e := &explanation{}
	e.add(heartRubric)
	e.add("The current HEART Score is 0.\n")
	score := 0

	score = scoreHeartCategory(e, "history", "history", p.History == "", history.String(), history.Points(), score)
	score = scoreHeartCategory(e, "electrocardiogram", "electrocardiogram", p.Electrocardiogram == "", ecg.String(), ecg.Points(), score)

	e.add(ageText)
	switch {
	case age < 45:
		e.addf("The patient's age is less than 45 years and so keep the current total at %d.\n", score)
	case age < 65:
		e.addf("The patient's age is between 45 and 64 years and so we increment the current total by 1, making the current total %d + 1 = %d.\n", score, score+1)
		score++
	default:
		e.addf("The patient's age is 65 years or older and so we increment the current total by 2, making the current total %d + 2 = %d.\n", score, score+2)
		score += 2
	}

	score = scoreHeartRiskFactors(e, &p, score)

	score = scoreHeartCategory(e, "initial_troponin", "initial troponin", p.InitialTroponin == "", troponin.String(), troponin.Points(), score)

	e.addf("Based on the patient's data, the HEART Score is %d.\n", score)
	return e.result(float64(score)), nil
}

func scoreHeartCategory(e *explanation, field, label string, defaulted bool, value string, points, score int) int {
	if defaulted {
		e.assume(field, value)
		e.addf("'%s' is missing from the patient's data and so we assume its value is '%s'. ", label, value)
	} else {
		e.addf("The value of '%s' in the patient's note is determined to be '%s'. ", label, value)
	}

	switch points {
	case 0:
		e.addf("Based on the HEART Score criteria, 0 points are added for '%s', keeping the current total at %d.\n", label, score)
	default:
		e.addf("Based on the HEART Score criteria, %s added for '%s', increasing the current total to %d + %d = %d.\n",
			pointsVerb(points), label, score, points, score+points)
	}
	return score + points
}

// pointsVerb renders "1 point is" or "n points are".
func pointsVerb(n int) string {
	if n == 1 {
		return "1 point is"
	}
	return pointsLabel(n) + " are"
}

func scoreHeartRiskFactors(e *explanation, p *entities.HeartParams, score int) int {
	var present, absent, missing []string
	atherosclerotic := false

	for _, f := range heartRiskFactors {
		value := f.value(p)
		switch {
		case value == nil:
			missing = append(missing, f.label)
			e.assume(f.field, "false")
		case *value:
			present = append(present, f.label)
			if f.field == "atherosclerotic_disease" {
				atherosclerotic = true
			}
		default:
			absent = append(absent, f.label)
		}
	}

	if len(present) > 0 {
		e.addf("The following risk factor(s) are present based on the patient's note: %s. ", strings.Join(present, ", "))
	}
	if len(absent) > 0 {
		e.addf("The following risk factor(s) are mentioned in the patient's note, but these risk factors are noted to be absent from the patient: %s. ",
			strings.Join(absent, ", "))
	}
	if len(missing) > 0 {
		e.addf("The following risk factor(s) are missing from the patient's data: %s. We will assume that these are all absent from the patient. ",
			strings.Join(missing, ", "))
	}

	count := len(present)
	e.addf("Based on the HEART Score risk factors criteria, %d risk factors are present and so ", count)

	switch {
	case atherosclerotic && count < 3:
		e.addf("2 points are added for the risk factors criteria as atherosclerotic disease is present, making the current total %d + 2 = %d.\n", score, score+2)
		return score + 2
	case count >= 3:
		e.addf("2 points are added as 3 or more risk factors are present, making the current total %d + 2 = %d.\n", score, score+2)
		return score + 2
	case count >= 1:
		e.addf("1 point is added for the risk factors criteria, making the current total, %d + 1 = %d.\n", score, score+1)
		return score + 1
	default:
		e.addf("0 points are added for the risk factors criteria, keeping the current total at %d.\n", score)
		return score
	}
}
