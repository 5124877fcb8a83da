package calculators

import (
	"github.com/giygas/medcalc/calculators/entities"
	"github.com/giygas/medcalc/units"
)

const capriniRubric = "The criteria for the Caprini Score are listed below:\n" +
	"1. Age, years: ≤40 = 0 points, 41-60 = +1 point, 61-74 = +2 points, ≥75 = +3 points\n" +
	"2. Type of surgery: None = 0 points, Minor = +1 point, Major >45 min, laparoscopic or arthroscopic = +2 points, " +
	"Elective major lower extremity arthroplasty = +5 points\n" +
	"3. Recent (≤1 month) event: Major surgery = +1 point, Congestive heart failure (CHF) = +1 point, Sepsis = +1 point, " +
	"Pneumonia = +1 point, Immobilizing plaster cast = +2 points, Hip, pelvis, or leg fracture = +5 points, " +
	"Stroke = +5 points, Multiple trauma = +5 points, Acute spinal cord injury causing paralysis = +5 points\n" +
	"4. Venous disease or clotting disorder: Varicose veins = +1 point, Current swollen legs = +1 point, " +
	"Current central venous access = +2 points, History of deep vein thrombosis (DVT) = +3 points, " +
	"History of pulmonary embolism (PE) = +3 points, Family history of thrombosis = +3 points, " +
	"Positive Factor V Leiden = +3 points, Positive prothrombin 20210A = +3 points, Elevated serum homocysteine = +3 points\n" +
	"5. Other congenital or acquired thrombophilia: Positive lupus anticoagulant = +3 points, " +
	"Elevated anticardiolipin antibody = +3 points, Heparin-induced thrombocytopenia = +3 points, " +
	"Other congenital or acquired thrombophilia = +3 points\n" +
	"6. Mobility: Normal, out of bed = 0 points, Medical patient currently on bed rest = +1 point, " +
	"Patient confined to bed >72 hours = +2 points\n" +
	"7. Other present and past history: History of inflammatory bowel disease = +1 point, " +
	"Acute myocardial infarction = +1 point, Chronic obstructive pulmonary disease (COPD) = +1 point, " +
	"Present or previous malignancy = +2 points, BMI >25 kg/m^2 = +2 points\n" +
	"The total Caprini Score is calculated by summing the points for each criterion.\n\n"

// capriniFactor is a yes/no Caprini criterion.
type capriniFactor struct {
	field  string
	label  string
	points int
	value  func(p *entities.CapriniParams) *bool
}

var capriniRecentEvents = []capriniFactor{
	{"major_surgery", "major surgery in the last month", 1, func(p *entities.CapriniParams) *bool { return p.MajorSurgery }},
	{"chf", "congestive heart failure in the last month", 1, func(p *entities.CapriniParams) *bool { return p.CHF }},
	{"sepsis", "sepsis in the last month", 1, func(p *entities.CapriniParams) *bool { return p.Sepsis }},
	{"pneumonia", "pneumonia in the last month", 1, func(p *entities.CapriniParams) *bool { return p.Pneumonia }},
	{"immobilizing_plaster_case", "immobilizing plaster cast in the last month", 2, func(p *entities.CapriniParams) *bool { return p.ImmobilizingPlasterCast }},
	{"hip_pelvis_leg_fracture", "hip, pelvis, or leg fracture in the last month", 5, func(p *entities.CapriniParams) *bool { return p.HipPelvisLegFracture }},
	{"stroke", "stroke in the last month", 5, func(p *entities.CapriniParams) *bool { return p.Stroke }},
	{"multiple_trauma", "multiple trauma in the last month", 5, func(p *entities.CapriniParams) *bool { return p.MultipleTrauma }},
	{"acute_spinal_chord_injury", "acute spinal cord injury causing paralysis in the last month", 5, func(p *entities.CapriniParams) *bool { return p.AcuteSpinalCordInjury }},
	{"varicose_veins", "varicose veins", 1, func(p *entities.CapriniParams) *bool { return p.VaricoseVeins }},
	{"current_swollen_legs", "current swollen legs", 1, func(p *entities.CapriniParams) *bool { return p.CurrentSwollenLegs }},
	{"current_central_venuous", "current central venous access", 2, func(p *entities.CapriniParams) *bool { return p.CurrentCentralVenous }},
	{"previous_dvt", "previous DVT documented", 3, func(p *entities.CapriniParams) *bool { return p.PreviousDVT }},
	{"previous_pe", "previous pulmonary embolism documented", 3, func(p *entities.CapriniParams) *bool { return p.PreviousPE }},
	{"family_history_thrombosis", "family history of thrombosis", 3, func(p *entities.CapriniParams) *bool { return p.FamilyHistoryThrombosis }},
	{"positive_factor_v", "positive Factor V Leiden", 3, func(p *entities.CapriniParams) *bool { return p.PositiveFactorV }},
	{"positive_prothrombin", "positive prothrombin 20210A", 3, func(p *entities.CapriniParams) *bool { return p.PositiveProthrombin }},
	{"serum_homocysteine", "elevated serum homocysteine", 3, func(p *entities.CapriniParams) *bool { return p.SerumHomocysteine }},
	{"positive_lupus_anticoagulant", "positive lupus anticoagulant", 3, func(p *entities.CapriniParams) *bool { return p.PositiveLupusAnticoag }},
	{"elevated_anticardiolipin_antibody", "elevated anticardiolipin antibody", 3, func(p *entities.CapriniParams) *bool { return p.ElevatedAnticardiolipin }},
	{"heparin_induced_thrombocytopenia", "heparin-induced thrombocytopenia", 3, func(p *entities.CapriniParams) *bool { return p.HeparinThrombocytopenia }},
	{"congenital_acquired_thrombophilia", "other congenital or acquired thrombophilia", 3, func(p *entities.CapriniParams) *bool { return p.OtherThrombophilia }},
}

// capriniHistory follows mobility in the scoring order.
var capriniHistory = []capriniFactor{
	{"inflammatory_bowel_disease", "history of inflammatory bowel disease", 1, func(p *entities.CapriniParams) *bool { return p.InflammatoryBowelDisease }},
	{"acute_myocardial_infarction", "acute myocardial infarction", 1, func(p *entities.CapriniParams) *bool { return p.AcuteMyocardialInfarction }},
	{"copd", "chronic obstructive pulmonary disease", 1, func(p *entities.CapriniParams) *bool { return p.COPD }},
	{"malignancy", "malignancy", 2, func(p *entities.CapriniParams) *bool { return p.Malignancy }},
}

// Caprini computes the Caprini venous thromboembolism risk score. Sex is
// required and narrated but does not score.
func Caprini(p entities.CapriniParams) (entities.Result, error) {
	sex, err := requireSex("sex", p.Sex)
	if err != nil {
		return entities.Result{}, err
	}
	ageText, age, err := requireAge("age", p.Age)
	if err != nil {
		return entities.Result{}, err
	}

	surgery := entities.SurgeryNone
	if p.SurgeryType != "" {
		if surgery, err = entities.ParseSurgeryType("surgery_type", p.SurgeryType); err != nil {
			return entities.Result{}, err
		}
	}
	mobility := entities.MobilityNormal
	if p.Mobility != "" {
		if mobility, err = entities.ParseMobility("mobility", p.Mobility); err != nil {
			return entities.Result{}, err
		}
	}
	var bmi float64
	if p.BMI != nil {
		if bmi, err = units.BMIValue(*p.BMI); err != nil {
			return entities.Result{}, err
		}
	}

	e := &explanation{}
	e.add(capriniRubric)
	e.add("The patient's current caprini score is 0.\n")
	score := 0

	e.addf("The patient's gender is %s.\n", sex)
	e.add(ageText)

	switch {
	case age <= 40:
		e.addf("Because the patient's age is less or equal to 40, we do not add any points to the total, keeping the current total at %d.\n", score)
	case age <= 60:
		e.addf("Because the patient's age is between 41 and 60, we add one point to the current total, making the current total, %d + 1 = %d.\n", score, score+1)
		score++
	case age < 75:
		e.addf("Because the patient's age is between 61 and 74, we add two points to the current total, making the current total, %d + 2 = %d.\n", score, score+2)
		score += 2
	default:
		e.addf("Because the patient's age is at least 75, we add three points to the current total, making the current total, %d + 3 = %d.\n", score, score+3)
		score += 3
	}

	if p.SurgeryType == "" {
		e.assume("surgery_type", surgery.String())
		e.addf("The patient does not report anything about the type of surgery and so we assume it to be '%s'. "+
			"Hence, 0 points are added to the score, keeping the total at %d.\n", surgery, score)
	} else {
		points := surgery.Points()
		e.addf("The patient's surgery type is reported to be '%s'. Hence, we add %s to the total, making the current total %d + %d = %d.\n",
			surgery, pointsLabel(points), score, points, score+points)
		score += points
	}

	for _, f := range capriniRecentEvents {
		score = scoreCapriniFactor(e, f, f.value(&p), score)
	}

	if p.Mobility == "" {
		e.assume("mobility", mobility.String())
		e.addf("The patient does not report anything about mobility and so we assume it to be '%s'. "+
			"Hence, 0 points are added to the score, keeping the total at %d.\n", mobility, score)
	} else {
		points := mobility.Points()
		e.addf("The patient's mobility status is '%s'. Hence, we add %s to the total, making the current total %d + %d = %d.\n",
			mobility, pointsLabel(points), score, points, score+points)
		score += points
	}

	for _, f := range capriniHistory {
		score = scoreCapriniFactor(e, f, f.value(&p), score)
	}

	switch {
	case p.BMI == nil:
		e.addf("The patient does not report anything about their BMI and so no points are added for it, keeping the total at %d.\n", score)
	case bmi > 25:
		e.addf("The patient's BMI is %s kg/m^2 which is greater than 25 kg/m^2, and so we add 2 points to the total, making the current total %d + 2 = %d.\n",
			num(bmi), score, score+2)
		score += 2
	default:
		e.addf("The patient's BMI is %s kg/m^2 which is not greater than 25 kg/m^2, and so we add 0 points to the total, keeping the total at %d.\n",
			num(bmi), score)
	}

	e.addf("Hence, the patient's Caprini score is %d.\n", score)
	return e.result(float64(score)), nil
}

func scoreCapriniFactor(e *explanation, f capriniFactor, value *bool, score int) int {
	switch {
	case value == nil:
		e.assume(f.field, "false")
		e.addf("The patient does not report anything about %s and so we assume this to be false. "+
			"Hence, 0 points are added to the score, keeping the total at %d.\n", f.label, score)
		return score
	case *value:
		e.addf("The patient has %s. Hence, we add %s to the total, making the current total %d + %d = %d.\n",
			f.label, pointsLabel(f.points), score, f.points, score+f.points)
		return score + f.points
	default:
		e.addf("The patient does not have %s. Hence, 0 points are added to the score, keeping the total at %d.\n", f.label, score)
		return score
	}
}
