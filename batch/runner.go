package batch

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/giygas/medcalc/calculators"
	"github.com/giygas/medcalc/calculators/entities"
	"github.com/giygas/medcalc/interfaces"
	"github.com/giygas/medcalc/logging"
)

// Outcome is the result of one case. Exactly one of Result and Error is set.
type Outcome struct {
	ID         string           `json:"id"`
	Calculator string           `json:"calculator"`
	Line       int              `json:"line"`
	Result     *entities.Result `json:"result,omitempty"`
	Error      string           `json:"error,omitempty"`

	// InvalidInput is set when Error was caused by the case's parameters.
	InvalidInput bool `json:"invalid_input,omitempty"`
}

// Summary counts the outcomes of a run.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Runner computes cases concurrently against a registry.
type Runner struct {
	registry interfaces.CalculatorRegistry
	workers  int
}

// NewRunner returns a runner using one worker per CPU.
func NewRunner(registry interfaces.CalculatorRegistry) *Runner {
	return NewRunnerWithWorkers(registry, runtime.NumCPU())
}

// NewRunnerWithWorkers returns a runner with the given number of workers,
// at least one.
func NewRunnerWithWorkers(registry interfaces.CalculatorRegistry, workers int) *Runner {
	return &Runner{registry: registry, workers: max(workers, 1)}
}

// Run computes every case and returns the outcomes in input order. Cases
// not yet started when ctx is done fail with the context error.
func (r *Runner) Run(ctx context.Context, cases []Case) ([]Outcome, Summary) {
	start := time.Now()
	outcomes := make([]Outcome, len(cases))

	jobs := make(chan int)
	var wg sync.WaitGroup

	for range min(r.workers, len(cases)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = r.runOne(ctx, cases[i])
			}
		}()
	}

	for i := range cases {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	summary := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Error == "" {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	logging.Info("Batch run completed",
		"cases", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"duration", time.Since(start))
	return outcomes, summary
}

func (r *Runner) runOne(ctx context.Context, c Case) Outcome {
	out := Outcome{ID: c.ID, Calculator: c.Calculator, Line: c.Line}

	if err := ctx.Err(); err != nil {
		out.Error = err.Error()
		return out
	}

	res, err := r.registry.Compute(c.Calculator, c.Parameters)
	if err != nil {
		out.Error = err.Error()
		out.InvalidInput = calculators.IsInvalidInput(err)
		logging.Debug("Batch case failed", "id", c.ID, "calculator", c.Calculator, "error", err)
		return out
	}
	out.Result = &res
	return out
}
