package drawer

import (
	"io"

	"github.com/pkg/errors"

	"github.com/askiada/go-derive/pkg/pipeline"
	"github.com/askiada/go-derive/pkg/pipeline/measure"
	"github.com/askiada/go-derive/pkg/pipeline/model"
)

// AddDefinition adds stages to drw as a chain going from the start step to the end
// step. Step names match the ones used by execution hooks.
func AddDefinition(drw Drawer, stages []pipeline.Stage) error {
	names := make([]string, 0, len(stages)+2)
	names = append(names, model.StartStep.Name())

	for idx, stage := range stages {
		names = append(names, model.StepInfo{Index: idx, Variant: stage.Variant()}.Name())
	}

	names = append(names, model.EndStep.Name())

	for idx, name := range names {
		err := drw.AddStep(name)
		if err != nil {
			return errors.Wrap(err, "unable to add step to drawer")
		}

		if idx == 0 {
			continue
		}

		err = drw.AddLink(names[idx-1], name)
		if err != nil {
			return errors.Wrap(err, "unable to add link to drawer")
		}
	}

	return nil
}

// Render writes the DOT graph of stages to wrt. When msr is not nil, steps are
// annotated with its durations.
func Render(wrt io.Writer, stages []pipeline.Stage, msr measure.Measure, opts ...Option) error {
	drw := NewDOTDrawer(opts...)

	err := AddDefinition(drw, stages)
	if err != nil {
		return err
	}

	if msr != nil {
		err = drw.AddMeasure(msr)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	return drw.Draw(wrt)
}
