package entities

import "github.com/giygas/medcalc/units"

// Optional booleans are pointers: nil means the factor was not reported,
// which scores like false but is narrated differently. Categorical
// values stay strings here and are parsed by the calculator, so an empty
// string selects the documented default.

type CapriniParams struct {
	Sex string     `json:"sex" validate:"required"`
	Age *units.Age `json:"age" validate:"required,dive"`

	SurgeryType string `json:"surgery_type,omitempty"`

	MajorSurgery            *bool `json:"major_surgery,omitempty"`
	CHF                     *bool `json:"chf,omitempty"`
	Sepsis                  *bool `json:"sepsis,omitempty"`
	Pneumonia               *bool `json:"pneumonia,omitempty"`
	ImmobilizingPlasterCast *bool `json:"immobilizing_plaster_case,omitempty"`
	HipPelvisLegFracture    *bool `json:"hip_pelvis_leg_fracture,omitempty"`
	Stroke                  *bool `json:"stroke,omitempty"`
	MultipleTrauma          *bool `json:"multiple_trauma,omitempty"`
	AcuteSpinalCordInjury   *bool `json:"acute_spinal_chord_injury,omitempty"`

	VaricoseVeins           *bool `json:"varicose_veins,omitempty"`
	CurrentSwollenLegs      *bool `json:"current_swollen_legs,omitempty"`
	CurrentCentralVenous    *bool `json:"current_central_venuous,omitempty"`
	PreviousDVT             *bool `json:"previous_dvt,omitempty"`
	PreviousPE              *bool `json:"previous_pe,omitempty"`
	FamilyHistoryThrombosis *bool `json:"family_history_thrombosis,omitempty"`
	PositiveFactorV         *bool `json:"positive_factor_v,omitempty"`
	PositiveProthrombin     *bool `json:"positive_prothrombin,omitempty"`
	SerumHomocysteine       *bool `json:"serum_homocysteine,omitempty"`
	PositiveLupusAnticoag   *bool `json:"positive_lupus_anticoagulant,omitempty"`
	ElevatedAnticardiolipin *bool `json:"elevated_anticardiolipin_antibody,omitempty"`
	HeparinThrombocytopenia *bool `json:"heparin_induced_thrombocytopenia,omitempty"`
	OtherThrombophilia      *bool `json:"congenital_acquired_thrombophilia,omitempty"`

	Mobility string `json:"mobility,omitempty"`

	InflammatoryBowelDisease  *bool `json:"inflammatory_bowel_disease,omitempty"`
	AcuteMyocardialInfarction *bool `json:"acute_myocardial_infarction,omitempty"`
	COPD                      *bool `json:"copd,omitempty"`
	Malignancy                *bool `json:"malignancy,omitempty"`

	// BMI in kg/m^2.
	BMI *units.Quantity `json:"bmi,omitempty"`
}

type HeartParams struct {
	Age *units.Age `json:"age" validate:"required,dive"`

	History           string `json:"history,omitempty"`
	Electrocardiogram string `json:"electrocardiogram,omitempty"`
	InitialTroponin   string `json:"initial_troponin,omitempty"`

	Hypertension           *bool `json:"hypertension,omitempty"`
	Hypercholesterolemia   *bool `json:"hypercholesterolemia,omitempty"`
	DiabetesMellitus       *bool `json:"diabetes_mellitus,omitempty"`
	Obesity                *bool `json:"obesity,omitempty"`
	Smoking                *bool `json:"smoking,omitempty"`
	FamilyWithCVD          *bool `json:"family_with_cvd,omitempty"`
	AtheroscleroticDisease *bool `json:"atherosclerotic_disease,omitempty"`
}

type WellsDVTParams struct {
	ActiveCancer               *bool `json:"active_cancer,omitempty"`
	Bedridden                  *bool `json:"bedridden_for_atleast_3_days,omitempty"`
	MajorSurgery               *bool `json:"major_surgery_in_last_12_weeks,omitempty"`
	CalfSwelling               *bool `json:"calf_swelling_3cm,omitempty"`
	CollateralSuperficialVeins *bool `json:"collateral_superficial_veins,omitempty"`
	LegSwollen                 *bool `json:"leg_swollen,omitempty"`
	LocalizedTenderness        *bool `json:"localized_tenderness_on_deep_venuous_system,omitempty"`
	PittingEdema               *bool `json:"pitting_edema_on_symptomatic_leg,omitempty"`
	ParalysisOrImmobilization  *bool `json:"paralysis_paresis_immobilization_in_lower_extreme,omitempty"`
	PreviousDVT                *bool `json:"previous_dvt,omitempty"`
	AlternativeDiagnosis       *bool `json:"alternative_to_dvt_diagnosis,omitempty"`
}

type FreeWaterDeficitParams struct {
	Sex    string          `json:"sex" validate:"required"`
	Age    *units.Age      `json:"age" validate:"required,dive"`
	Weight *units.Quantity `json:"weight" validate:"required"`
	Sodium *units.Quantity `json:"sodium" validate:"required"`
}

type HomaIRParams struct {
	Insulin *units.Quantity `json:"insulin" validate:"required"`
	Glucose *units.Quantity `json:"glucose" validate:"required"`
}

type IdealBodyWeightParams struct {
	Sex    string        `json:"sex" validate:"required"`
	Height *units.Height `json:"height" validate:"required,dive"`
}

// QTParams is shared by the corrected QT formulas.
type QTParams struct {
	HeartRate  *units.Quantity `json:"heart_rate" validate:"required"`
	QTInterval *units.Quantity `json:"qt_interval" validate:"required"`
}

type BMIParams struct {
	Height *units.Height   `json:"height" validate:"required,dive"`
	Weight *units.Quantity `json:"weight" validate:"required"`
}

type AdjustedBodyWeightParams struct {
	Sex    string          `json:"sex" validate:"required"`
	Height *units.Height   `json:"height" validate:"required,dive"`
	Weight *units.Quantity `json:"weight" validate:"required"`
}
