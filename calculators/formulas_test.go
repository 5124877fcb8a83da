package calculators

import (
	"errors"
	"strings"
	"testing"

	"github.com/giygas/medcalc/calculators/entities"
	"github.com/giygas/medcalc/units"
	"github.com/giygas/medcalc/validation"
)

func TestQTc(t *testing.T) {
	tests := []struct {
		name string
		fn   func(entities.QTParams) (entities.Result, error)
		hr   float64
		qt   float64
		want float64
	}{
		{"rautaharju tachycardia", QTcRautaharju, 110, 330, 421.667},
		{"rautaharju bradycardia", QTcRautaharju, 57, 330, 324.5},
		{"bazett at 60 bpm", QTcBazett, 60, 400, 400},
		{"bazett 176 bpm", QTcBazett, 176, 330, 565.115},
		{"bazett 150 bpm", QTcBazett, 150, 330, 521.776},
		{"hodges at 60 bpm", QTcHodges, 60, 400, 400},
		{"hodges 52 bpm", QTcHodges, 52, 330, 315.988},
		{"hodges 148 bpm", QTcHodges, 148, 330, 484.259},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(entities.QTParams{
				HeartRate:  qty(tt.hr, "beats per minute"),
				QTInterval: qty(tt.qt, "msec"),
			})
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if got.Answer != tt.want {
				t.Errorf("QTc = %v, want %v\n%s", got.Answer, tt.want, got.Explanation)
			}
			if !strings.HasSuffix(got.Explanation, "The patient's corrected QT interval (QTc) is "+units.FormatNumber(tt.want)+" msec.\n") {
				t.Errorf("explanation does not end with the answer:\n%s", got.Explanation)
			}
		})
	}
}

func TestQTcRautaharju_Explanation(t *testing.T) {
	got, err := QTcRautaharju(entities.QTParams{HeartRate: qty(110, "bpm"), QTInterval: qty(330, "ms")})
	if err != nil {
		t.Fatalf("QTcRautaharju() error = %v", err)
	}
	if !strings.Contains(got.Explanation, "330 x (120 + 110) / 180 = 421.667") {
		t.Errorf("explanation missing the arithmetic:\n%s", got.Explanation)
	}
}

func TestQTc_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params entities.QTParams
		want   error
	}{
		{"missing heart rate", entities.QTParams{QTInterval: qty(330, "msec")}, validation.ErrMissingRequiredField},
		{"missing QT", entities.QTParams{HeartRate: qty(60, "bpm")}, validation.ErrMissingRequiredField},
		{"heart rate unit", entities.QTParams{HeartRate: qty(60, "Hz"), QTInterval: qty(330, "msec")}, units.ErrUnrecognizedUnit},
		{"QT unit", entities.QTParams{HeartRate: qty(60, "bpm"), QTInterval: qty(0.33, "s")}, units.ErrUnrecognizedUnit},
		{"zero heart rate", entities.QTParams{HeartRate: qty(0, "bpm"), QTInterval: qty(330, "msec")}, validation.ErrOutOfRange},
		{"negative QT", entities.QTParams{HeartRate: qty(60, "bpm"), QTInterval: qty(-1, "msec")}, validation.ErrOutOfRange},
		{"heart rate rounds RR to zero", entities.QTParams{HeartRate: qty(200000, "bpm"), QTInterval: qty(330, "msec")}, validation.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := QTcBazett(tt.params)
			if !errors.Is(err, tt.want) {
				t.Errorf("QTcBazett() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestIdealBodyWeight(t *testing.T) {
	tests := []struct {
		name   string
		sex    string
		height *units.Height
		want   float64
	}{
		{"male 72 in", "Male", units.NewHeight(72, "in"), 77.6},
		{"female 65 in", "Female", units.NewHeight(65, "in"), 57},
		{"male 5 ft 10 in", "M", units.FeetInches(5, 10), 73},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IdealBodyWeight(entities.IdealBodyWeightParams{Sex: tt.sex, Height: tt.height})
			if err != nil {
				t.Fatalf("IdealBodyWeight() error = %v", err)
			}
			if got.Answer != tt.want {
				t.Errorf("IdealBodyWeight() = %v, want %v\n%s", got.Answer, tt.want, got.Explanation)
			}
		})
	}
}

func TestIdealBodyWeight_Explanation(t *testing.T) {
	got, err := IdealBodyWeight(entities.IdealBodyWeightParams{Sex: "Male", Height: units.NewHeight(72, "in")})
	if err != nil {
		t.Fatalf("IdealBodyWeight() error = %v", err)
	}
	want := "The patient's gender is Male.\n" +
		"The patient's height is 72 in. \n" +
		"For males, the ideal body weight (IBW) is calculated as follows:\n" +
		"IBW = 50 kg + 2.3 kg * (height (in inches) - 60)\n" +
		"Plugging in the values gives us 50 kg + 2.3 kg * (72 (in inches) - 60) = 77.6 kg.\n" +
		"Hence, the patient's IBW is 77.6 kg.\n"
	if got.Explanation != want {
		t.Errorf("explanation =\n%q\nwant\n%q", got.Explanation, want)
	}
}

func TestIdealBodyWeight_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params entities.IdealBodyWeightParams
		want   error
	}{
		{"missing sex", entities.IdealBodyWeightParams{Height: units.NewHeight(170, "cm")}, validation.ErrMissingRequiredField},
		{"unknown sex", entities.IdealBodyWeightParams{Sex: "X", Height: units.NewHeight(170, "cm")}, validation.ErrUnrecognizedValue},
		{"missing height", entities.IdealBodyWeightParams{Sex: "Male"}, validation.ErrMissingRequiredField},
		{"bad unit", entities.IdealBodyWeightParams{Sex: "Male", Height: units.NewHeight(170, "yards")}, units.ErrUnrecognizedUnit},
		{"zero height", entities.IdealBodyWeightParams{Sex: "Male", Height: units.NewHeight(0, "cm")}, validation.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IdealBodyWeight(tt.params)
			if !errors.Is(err, tt.want) {
				t.Errorf("IdealBodyWeight() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAdjustedBodyWeight(t *testing.T) {
	got, err := AdjustedBodyWeight(entities.AdjustedBodyWeightParams{
		Sex:    "Male",
		Height: units.NewHeight(72, "in"),
		Weight: qty(100, "kg"),
	})
	if err != nil {
		t.Fatalf("AdjustedBodyWeight() error = %v", err)
	}
	if got.Answer != 86.56 {
		t.Errorf("AdjustedBodyWeight() = %v, want 86.56\n%s", got.Answer, got.Explanation)
	}
	if !strings.Contains(got.Explanation, "ABW = 77.6 kg + 0.4 * (100 kg - 77.6 kg) = 86.56 kg.") {
		t.Errorf("explanation missing the arithmetic:\n%s", got.Explanation)
	}

	if _, err := AdjustedBodyWeight(entities.AdjustedBodyWeightParams{Sex: "Male", Height: units.NewHeight(72, "in")}); !errors.Is(err, validation.ErrMissingRequiredField) {
		t.Errorf("missing weight error = %v", err)
	}
}

func TestBMI(t *testing.T) {
	tests := []struct {
		name   string
		height *units.Height
		weight *units.Quantity
		want   float64
	}{
		{"metric", units.NewHeight(170, "cm"), qty(68, "kg"), 23.529},
		{"meters", units.NewHeight(2, "m"), qty(100, "kg"), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BMI(entities.BMIParams{Height: tt.height, Weight: tt.weight})
			if err != nil {
				t.Fatalf("BMI() error = %v", err)
			}
			if got.Answer != tt.want {
				t.Errorf("BMI() = %v, want %v\n%s", got.Answer, tt.want, got.Explanation)
			}
		})
	}

	if _, err := BMI(entities.BMIParams{Height: units.NewHeight(170, "cm"), Weight: qty(-5, "kg")}); !errors.Is(err, validation.ErrOutOfRange) {
		t.Errorf("negative weight error = %v", err)
	}
}

func TestFreeWaterDeficit(t *testing.T) {
	tests := []struct {
		name   string
		params entities.FreeWaterDeficitParams
		want   float64
		tbw    string
	}{
		{
			name: "child",
			params: entities.FreeWaterDeficitParams{
				Sex: "Female", Age: units.Years(17), Weight: qty(63, "kg"), Sodium: qty(141, "mEq/L"),
			},
			want: 0.27,
			tbw:  "the patient is a child",
		},
		{
			name: "elderly male",
			params: entities.FreeWaterDeficitParams{
				Sex: "Male", Age: units.Years(70), Weight: qty(80, "kg"), Sodium: qty(150, "mmol/L"),
			},
			want: 2.857,
			tbw:  "For elderly males, the total body water percentage value is 0.50.",
		},
		{
			name: "adult female",
			params: entities.FreeWaterDeficitParams{
				Sex: "Female", Age: units.Years(40), Weight: qty(70, "kg"), Sodium: qty(140, "mmol/L"),
			},
			want: 0,
			tbw:  "For adult females, the total body water percentage value is 0.50.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FreeWaterDeficit(tt.params)
			if err != nil {
				t.Fatalf("FreeWaterDeficit() error = %v", err)
			}
			if got.Answer != tt.want {
				t.Errorf("FreeWaterDeficit() = %v, want %v\n%s", got.Answer, tt.want, got.Explanation)
			}
			if !strings.Contains(got.Explanation, tt.tbw) {
				t.Errorf("explanation missing %q\n%s", tt.tbw, got.Explanation)
			}
		})
	}
}

func TestFreeWaterDeficit_Errors(t *testing.T) {
	valid := func() entities.FreeWaterDeficitParams {
		return entities.FreeWaterDeficitParams{
			Sex: "Male", Age: units.Years(40), Weight: qty(70, "kg"), Sodium: qty(145, "mmol/L"),
		}
	}

	tests := []struct {
		name   string
		mutate func(*entities.FreeWaterDeficitParams)
		want   error
	}{
		{"unknown sex", func(p *entities.FreeWaterDeficitParams) { p.Sex = "other" }, validation.ErrUnrecognizedValue},
		{"missing sodium", func(p *entities.FreeWaterDeficitParams) { p.Sodium = nil }, validation.ErrMissingRequiredField},
		{"sodium unit", func(p *entities.FreeWaterDeficitParams) { p.Sodium = qty(145, "mmol") }, units.ErrUnrecognizedUnit},
		{"weight unit", func(p *entities.FreeWaterDeficitParams) { p.Weight = qty(70, "stone") }, units.ErrUnrecognizedUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			if _, err := FreeWaterDeficit(p); !errors.Is(err, tt.want) {
				t.Errorf("FreeWaterDeficit() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHomaIR(t *testing.T) {
	tests := []struct {
		name    string
		insulin *units.Quantity
		glucose *units.Quantity
		want    float64
	}{
		{"pmol/L insulin", qty(756, "pmol/L"), qty(97.3, "mg/dL"), 1089.76},
		{"µIU/mL insulin and mmol/L glucose", qty(10, "µIU/mL"), qty(5.4, "mmol/L"), 2.402},
		{"ng/mL insulin", qty(1, "ng/mL"), qty(81, "mg/dL"), 4.96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HomaIR(entities.HomaIRParams{Insulin: tt.insulin, Glucose: tt.glucose})
			if err != nil {
				t.Fatalf("HomaIR() error = %v", err)
			}
			if got.Answer != tt.want {
				t.Errorf("HomaIR() = %v, want %v\n%s", got.Answer, tt.want, got.Explanation)
			}
		})
	}
}

func TestHomaIR_Explanation(t *testing.T) {
	got, err := HomaIR(entities.HomaIRParams{Insulin: qty(756, "pmol/L"), Glucose: qty(97.3, "mg/dL")})
	if err != nil {
		t.Fatalf("HomaIR() error = %v", err)
	}
	for _, want := range []string{
		"756 * 6 = 4536 µIU/mL",
		"The concentration of glucose is 97.3 mg/dL.",
		"Plugging into the formula will give us 4536 * 97.3/405 = 1089.76.",
	} {
		if !strings.Contains(got.Explanation, want) {
			t.Errorf("explanation missing %q\n%s", want, got.Explanation)
		}
	}
}

func TestHomaIR_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params entities.HomaIRParams
		want   error
	}{
		{"missing insulin", entities.HomaIRParams{Glucose: qty(90, "mg/dL")}, validation.ErrMissingRequiredField},
		{"missing glucose", entities.HomaIRParams{Insulin: qty(10, "µIU/mL")}, validation.ErrMissingRequiredField},
		{"insulin unit", entities.HomaIRParams{Insulin: qty(10, "pmol/dL"), Glucose: qty(90, "mg/dL")}, units.ErrUnrecognizedUnit},
		{"glucose unit", entities.HomaIRParams{Insulin: qty(10, "µIU/mL"), Glucose: qty(90, "mEq/L")}, units.ErrMissingValence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := HomaIR(tt.params); !errors.Is(err, tt.want) {
				t.Errorf("HomaIR() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCalculators_Idempotent(t *testing.T) {
	runs := map[string]func() (entities.Result, error){
		"caprini": func() (entities.Result, error) {
			return Caprini(entities.CapriniParams{Sex: "Male", Age: units.Years(60), Stroke: entities.Flag(true)})
		},
		"heart": func() (entities.Result, error) {
			return Heart(entities.HeartParams{Age: units.Years(55), Smoking: entities.Flag(true)})
		},
		"wells_dvt": func() (entities.Result, error) {
			return WellsDVT(entities.WellsDVTParams{LegSwollen: entities.Flag(true)})
		},
		"homa_ir": func() (entities.Result, error) {
			return HomaIR(entities.HomaIRParams{Insulin: qty(756, "pmol/L"), Glucose: qty(97.3, "mg/dL")})
		},
		"qtc_rautaharju": func() (entities.Result, error) {
			return QTcRautaharju(entities.QTParams{HeartRate: qty(110, "bpm"), QTInterval: qty(330, "msec")})
		},
	}

	for name, run := range runs {
		t.Run(name, func(t *testing.T) {
			first, err := run()
			if err != nil {
				t.Fatalf("first run error = %v", err)
			}
			second, err := run()
			if err != nil {
				t.Fatalf("second run error = %v", err)
			}
			if first.Answer != second.Answer || first.Explanation != second.Explanation {
				t.Error("two runs with the same input differ")
			}
		})
	}
}

func TestCalculators_DoNotMutateInput(t *testing.T) {
	p := entities.CapriniParams{Sex: "Male", Age: units.Years(17)}
	if _, err := Caprini(p); err != nil {
		t.Fatalf("Caprini() error = %v", err)
	}
	if p.SurgeryType != "" || p.Mobility != "" || p.Stroke != nil {
		t.Errorf("Caprini filled defaults into its input: %+v", p)
	}
}
