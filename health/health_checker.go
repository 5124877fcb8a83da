// Package health runs reference cases through the calculator registry and
// reports whether the answers still match.
package health

import (
	"math"
	"runtime"
	"time"

	"github.com/giygas/medcalc/interfaces"
	"github.com/giygas/medcalc/logging"
	"github.com/giygas/medcalc/units"
)

// Status values reported by SelfCheck.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// ReferenceCase is one calculator run with a known answer.
type ReferenceCase struct {
	Name       string
	Calculator string
	Params     string
	Want       float64
}

// tolerance absorbs float noise below the three-decimal rounding.
const tolerance = 1e-9

// DefaultCases covers a score, a formula and a unit conversion path.
var DefaultCases = []ReferenceCase{
	{
		Name:       "qtc_rautaharju_tachycardia",
		Calculator: "qtc_rautaharju",
		Params:     `{"heart_rate":[110,"bpm"],"qt_interval":[330,"msec"]}`,
		Want:       421.667,
	},
	{
		Name:       "ideal_body_weight_male_72in",
		Calculator: "ideal_body_weight",
		Params:     `{"sex":"Male","height":[72,"in"]}`,
		Want:       77.6,
	},
	{
		Name:       "homa_ir_pmol",
		Calculator: "homa_ir",
		Params:     `{"insulin":[756,"pmol/L"],"glucose":[97.3,"mg/dL"]}`,
		Want:       1089.76,
	},
	{
		Name:       "caprini_teenager",
		Calculator: "caprini",
		Params:     `{"sex":"Male","age":[17,"years"]}`,
		Want:       0,
	},
	{
		Name:       "wells_dvt_two_findings",
		Calculator: "wells_dvt",
		Params:     `{"active_cancer":true,"calf_swelling_3cm":true,"alternative_to_dvt_diagnosis":false}`,
		Want:       2,
	},
}

// SelfCheckerImpl implements interfaces.SelfChecker.
type SelfCheckerImpl struct {
	registry interfaces.CalculatorRegistry
	cases    []ReferenceCase
}

// NewSelfChecker checks registry against DefaultCases.
func NewSelfChecker(registry interfaces.CalculatorRegistry) interfaces.SelfChecker {
	return NewSelfCheckerWithCases(registry, DefaultCases)
}

// NewSelfCheckerWithCases checks registry against cases.
func NewSelfCheckerWithCases(registry interfaces.CalculatorRegistry, cases []ReferenceCase) interfaces.SelfChecker {
	return &SelfCheckerImpl{registry: registry, cases: cases}
}

// SelfCheck runs every reference case. All passing is healthy, a
// minority failing is degraded, and no calculators, no cases or at least
// half failing is unhealthy.
func (s *SelfCheckerImpl) SelfCheck() (status string, details map[string]any) {
	start := time.Now()
	names := s.registry.Names()
	failures := make(map[string]string)

	for _, c := range s.cases {
		res, err := s.registry.Compute(c.Calculator, []byte(c.Params))
		switch {
		case err != nil:
			failures[c.Name] = err.Error()
		case math.Abs(res.Answer-c.Want) > tolerance:
			failures[c.Name] = "got " + units.FormatNumber(res.Answer) + ", want " + units.FormatNumber(c.Want)
		}
	}

	passed := len(s.cases) - len(failures)
	switch {
	case len(names) == 0 || len(s.cases) == 0:
		status = StatusUnhealthy
	case len(failures) == 0:
		status = StatusHealthy
	case len(failures)*2 >= len(s.cases):
		status = StatusUnhealthy
	default:
		status = StatusDegraded
	}

	details = map[string]any{
		"checked_at":  start.Format(time.RFC3339),
		"duration_ms": math.Round(float64(time.Since(start).Microseconds())/10) / 100,
		"calculators": len(names),
		"cases":       len(s.cases),
		"passed":      passed,
		"failures":    failures,
		"system": map[string]any{
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}

	if status != StatusHealthy {
		logging.Warn("Self-check found failing reference cases", "status", status, "failed", len(failures), "cases", len(s.cases))
	} else {
		logging.Debug("Self-check passed", "cases", len(s.cases))
	}
	return status, details
}
