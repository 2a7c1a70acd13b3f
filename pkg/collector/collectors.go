package collector

import (
	"context"

	"github.com/askiada/go-derive/pkg/analytics"
	"github.com/askiada/go-derive/pkg/pipeline"
)

// Events returns the selected events.
type Events struct {
	DataCollector[[]analytics.Event]
}

// NewEvents returns an Events collector selecting sel.
func NewEvents(sel analytics.DataSelector) pipeline.Step[analytics.DataSelector, analytics.Model, []analytics.Event] {
	return Events{New[[]analytics.Event](sel)}
}

func (c Events) Transform(ctx context.Context, m analytics.Model) ([]analytics.Event, error) {
	if m == nil {
		return nil, ErrModelMustBeSet
	}

	return analytics.Select(ctx, m, c.Selector())
}

// Column returns the values of the selector dimension over the selected events.
type Column struct {
	DataCollector[analytics.Column]
}

// NewColumn returns a Column collector projecting the dimension of sel.
func NewColumn(sel analytics.DataSelector) pipeline.Step[analytics.DataSelector, analytics.Model, analytics.Column] {
	return Column{New[analytics.Column](sel)}
}

func (c Column) Transform(ctx context.Context, m analytics.Model) (analytics.Column, error) {
	if m == nil {
		return analytics.Column{}, ErrModelMustBeSet
	}

	return analytics.Project(ctx, m, c.Selector())
}

// Count returns the number of selected events.
type Count struct {
	DataCollector[int]
}

// NewCount returns a Count collector selecting sel.
func NewCount(sel analytics.DataSelector) pipeline.Step[analytics.DataSelector, analytics.Model, int] {
	return Count{New[int](sel)}
}

func (c Count) Transform(ctx context.Context, m analytics.Model) (int, error) {
	if m == nil {
		return 0, ErrModelMustBeSet
	}

	events, err := analytics.Select(ctx, m, c.Selector())
	if err != nil {
		return 0, err
	}

	return len(events), nil
}
