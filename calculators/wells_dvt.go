package calculators

import (
	"github.com/giygas/medcalc/calculators/entities"
)

const wellsDVTRubric = "The criteria for the Wells' Criteria for Deep Vein Thrombosis (DVT) score are listed below:\n" +
	"1. Active cancer (treatment or palliation within 6 months): No = 0 points, Yes = +1 point\n" +
	"2. Bedridden recently >3 days or major surgery within 12 weeks: No = 0 points, Yes = +1 point\n" +
	"3. Calf swelling >3 cm compared to the other leg (measured 10 cm below tibial tuberosity): No = 0 points, Yes = +1 point\n" +
	"4. Collateral (nonvaricose) superficial veins present: No = 0 points, Yes = +1 point\n" +
	"5. Entire leg swollen: No = 0 points, Yes = +1 point\n" +
	"6. Localized tenderness along the deep venous system: No = 0 points, Yes = +1 point\n" +
	"7. Pitting edema, confined to symptomatic leg: No = 0 points, Yes = +1 point\n" +
	"8. Paralysis, paresis, or recent plaster immobilization of the lower extremity: No = 0 points, Yes = +1 point\n" +
	"9. Previously documented DVT: No = 0 points, Yes = +1 point\n" +
	"10. Alternative diagnosis to DVT as likely or more likely: No = 0 points, Yes = -2 points\n" +
	"The total score is calculated by summing the points for each criterion.\n\n"

type wellsCriterion struct {
	field string
	label string
	value func(p *entities.WellsDVTParams) *bool
}

var (
	wellsActiveCancer = wellsCriterion{"active_cancer", "active cancer",
		func(p *entities.WellsDVTParams) *bool { return p.ActiveCancer }}
	wellsBedridden = wellsCriterion{"bedridden_for_atleast_3_days", "bedridden recently >3 days",
		func(p *entities.WellsDVTParams) *bool { return p.Bedridden }}
	wellsMajorSurgery = wellsCriterion{"major_surgery_in_last_12_weeks", "major surgery within 12 weeks",
		func(p *entities.WellsDVTParams) *bool { return p.MajorSurgery }}
	wellsAlternative = wellsCriterion{"alternative_to_dvt_diagnosis", "alternative diagnosis to DVT as likely or more likely",
		func(p *entities.WellsDVTParams) *bool { return p.AlternativeDiagnosis }}
)

// wellsSinglePoint are the +1 criteria scored after the combined
// bedridden/surgery criterion, in rubric order.
var wellsSinglePoint = []wellsCriterion{
	{"calf_swelling_3cm", "calf swelling >3 cm compared to the other leg",
		func(p *entities.WellsDVTParams) *bool { return p.CalfSwelling }},
	{"collateral_superficial_veins", "collateral (nonvaricose) superficial veins present",
		func(p *entities.WellsDVTParams) *bool { return p.CollateralSuperficialVeins }},
	{"leg_swollen", "entire leg swollen",
		func(p *entities.WellsDVTParams) *bool { return p.LegSwollen }},
	{"localized_tenderness_on_deep_venuous_system", "localized tenderness along the deep venous system",
		func(p *entities.WellsDVTParams) *bool { return p.LocalizedTenderness }},
	{"pitting_edema_on_symptomatic_leg", "pitting edema, confined to symptomatic leg",
		func(p *entities.WellsDVTParams) *bool { return p.PittingEdema }},
	{"paralysis_paresis_immobilization_in_lower_extreme", "paralysis, paresis, or recent plaster immobilization of the lower extremity",
		func(p *entities.WellsDVTParams) *bool { return p.ParalysisOrImmobilization }},
	{"previous_dvt", "previously documented DVT",
		func(p *entities.WellsDVTParams) *bool { return p.PreviousDVT }},
}

// WellsDVT computes Wells' criteria for deep vein thrombosis. Every
// criterion is optional and missing ones count as absent.
func WellsDVT(p entities.WellsDVTParams) (entities.Result, error) {
	e := &explanation{}
	e.add(wellsDVTRubric)
	e.add("The current Wells' DVT Score is 0.\n")
	score := 0

	score = scoreWellsCriterion(e, wellsActiveCancer, &p, score, 1)

	bedridden := narrateWellsCriterion(e, wellsBedridden, &p)
	surgery := narrateWellsCriterion(e, wellsMajorSurgery, &p)
	if bedridden || surgery {
		e.addf("Based on the Wells' DVT rule, at least one of the issues, 'bedridden recently >3 days' or "+
			"'major surgery within 12 weeks' must be true for this criteria to be met for the score to increase by 1. "+
			"Because this is the case, we increase the score by one making the total %d + 1 = %d.\n", score, score+1)
		score++
	} else {
		e.addf("Based on the Wells' DVT rule, at least one of the issues, 'bedridden recently >3 days' or "+
			"'major surgery within 12 weeks' must be true for this criteria to be met for the score to increase by 1. "+
			"This is not the case for this patient, and so the score remains unchanged at %d.\n", score)
	}

	for _, c := range wellsSinglePoint {
		score = scoreWellsCriterion(e, c, &p, score, 1)
	}

	score = scoreWellsCriterion(e, wellsAlternative, &p, score, -2)

	e.addf("The Wells' DVT score for the patient is %d.\n", score)
	return e.result(float64(score)), nil
}

// narrateWellsCriterion states whether a criterion is present, absent or
// missing, and reports whether it is present.
func narrateWellsCriterion(e *explanation, c wellsCriterion, p *entities.WellsDVTParams) bool {
	value := c.value(p)
	switch {
	case value == nil:
		e.assume(c.field, "false")
		e.addf("The issue, '%s,' is missing from the patient note and so the value is assumed to be absent from the patient. ", c.label)
		return false
	case *value:
		e.addf("From the patient's note, the issue, '%s,' is present. ", c.label)
		return true
	default:
		e.addf("From the patient's note, the issue, '%s,' is absent. ", c.label)
		return false
	}
}

func scoreWellsCriterion(e *explanation, c wellsCriterion, p *entities.WellsDVTParams, score, points int) int {
	if !narrateWellsCriterion(e, c, p) {
		e.addf("By the Wells' DVT rule, a point should not be given, and so the score remains unchanged and so total remains at %d.\n", score)
		return score
	}
	if points < 0 {
		e.addf("By the Wells' DVT rule, we decrease the score by %d and so total is %d - %d = %d.\n", -points, score, -points, score+points)
		return score + points
	}
	e.addf("By the Wells' DVT rule, a point should be given, and so we increment the score by one, making the total %d + 1 = %d.\n", score, score+1)
	return score + 1
}
