package drawer

import (
	"io"

	"github.com/askiada/go-derive/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStep adds a step to the pipeline drawer.
	AddStep(stepName string) error
	// AddLink adds a link between parent and children steps.
	AddLink(parentStepName, childrenStepName string) error
	// AddMeasure annotates the drawn steps with measured durations.
	AddMeasure(measure measure.Measure) error
	// Draw writes the pipeline graph to w.
	Draw(w io.Writer) error
}
