package measure

import (
	"time"

	"github.com/askiada/go-derive/pkg/pipeline/model"
)

type pipelineMeasure struct {
	model.NopHook
	Measure
}

// Hook returns a hook recording step durations and failures into m, by step name.
// The whole execution is recorded under the end step name.
func Hook(m Measure) model.Hook {
	return &pipelineMeasure{Measure: m}
}

func (pm *pipelineMeasure) AfterStep(_ model.RunInfo, step model.StepInfo, elapsed time.Duration, err error) {
	mt := pm.AddMetric(step.Name())
	if err != nil {
		mt.AddFailure()

		return
	}

	mt.AddDuration(elapsed)
}

func (pm *pipelineMeasure) OnFinish(_ model.RunInfo, elapsed time.Duration, err error) {
	mt := pm.AddMetric(model.EndStep.Name())
	if err != nil {
		mt.AddFailure()

		return
	}

	mt.AddDuration(elapsed)
}
