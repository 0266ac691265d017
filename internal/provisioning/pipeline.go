package provisioning

import (
	"fmt"
	"time"
)

// RunStages executes all stages sequentially, halting on the first error
// (fail-fast, no compensation). Skipped and warned stages are announced
// and recorded but do not stop the run.
func RunStages(ctx *Context, stages []Stage) error {
	start := time.Now()
	ctx.Observer.Info("Starting provisioning with %d stages...", len(stages))

	for i, stage := range stages {
		stageStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", stage.Name(), i+1, len(stages))

		ctx.Observer.Info("[%s] starting", name)

		result, err := stage.Provision(ctx)
		if err != nil {
			ctx.Observer.Error("[%s] failed: %v", name, err)
			return fmt.Errorf("%s stage failed: %w", stage.Name(), err)
		}

		ctx.State.Outcomes = append(ctx.State.Outcomes, Outcome{Stage: stage.Name(), Result: result})

		switch result.Status {
		case StatusSkipped:
			ctx.Observer.Warn("[%s] skipped: %s", name, result.Detail)
		case StatusWarned:
			ctx.Observer.Warn("[%s] %s", name, result.Detail)
		default:
			ctx.Observer.Success("[%s] completed in %v: %s",
				name, time.Since(stageStart).Round(time.Millisecond), result.Detail)
		}
	}

	ctx.Observer.Success("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// Warnings returns the outcomes that concluded with a warning.
func (s *State) Warnings() []Outcome {
	var warned []Outcome
	for _, o := range s.Outcomes {
		if o.Result.Status == StatusWarned {
			warned = append(warned, o)
		}
	}
	return warned
}
