// Package collector holds the steps bringing model data into a pipeline.
//
// A DataCollector is a step whose parameters are an analytics.DataSelector and whose
// input is the analytics.Model. New data sources are added by embedding
// DataCollector in a type providing Transform:
//
//	type Latest struct {
//		collector.DataCollector[analytics.Event]
//	}
//
//	func (l Latest) Transform(ctx context.Context, m analytics.Model) (analytics.Event, error) {
//		events, err := analytics.Select(ctx, m, l.Selector())
//		...
//	}
package collector

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-derive/pkg/analytics"
	"github.com/askiada/go-derive/pkg/pipeline"
)

// DataCollector is the base of the steps reading the model. On its own it has no
// transform and fails with pipeline.ErrNotImplemented.
type DataCollector[O any] struct {
	pipeline.StepBase[analytics.DataSelector, analytics.Model, O]
}

// ErrModelMustBeSet is returned by collectors executed without a model.
var ErrModelMustBeSet = errors.New("model must be set")

// New returns a collector base selecting sel.
func New[O any](sel analytics.DataSelector) DataCollector[O] {
	return DataCollector[O]{StepBase: pipeline.StepBase[analytics.DataSelector, analytics.Model, O]{Params: sel}}
}

// Selector returns the selector of the collector.
func (c DataCollector[O]) Selector() analytics.DataSelector {
	return c.Params
}
