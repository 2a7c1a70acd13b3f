// Package analytics describes the analytic model read by data collectors: typed
// dimensions and datasets of events, plus the selectors picking a part of them.
package analytics

import (
	"context"
	"time"
)

// DimensionType is the role of a dimension in the model.
type DimensionType string

const (
	Feature    DimensionType = "feature"
	Tag        DimensionType = "tag"
	Prediction DimensionType = "prediction"
	Actual     DimensionType = "actual"
)

// DataType is the kind of values held by a dimension.
type DataType string

const (
	Numeric     DataType = "numeric"
	Categorical DataType = "categorical"
)

// DatasetRole names a dataset of the model.
type DatasetRole string

const (
	Primary   DatasetRole = "primary"
	Reference DatasetRole = "reference"
)

// Dimension is a named column of the model.
type Dimension struct {
	Name     string        `yaml:"name"`
	Type     DimensionType `yaml:"type"`
	DataType DataType      `yaml:"data_type"`
}

// Event is a row of a dataset. Values are keyed by dimension name: float64 for
// numeric dimensions, string for categorical ones. A missing key is a missing value.
type Event struct {
	ID        string
	Timestamp time.Time
	Values    map[string]any
}

// Value returns the value of dimension name, nil when missing.
func (e Event) Value(name string) any {
	return e.Values[name]
}

// Model is the analytic data source. Implementations must be safe for concurrent
// reads and must not let callers mutate their state through returned values.
type Model interface {
	Dimensions() []Dimension
	Dimension(name string) (Dimension, bool)
	Events(ctx context.Context, role DatasetRole) ([]Event, error)
}

// Column is the projection of a dimension over selected events.
type Column struct {
	Dimension Dimension
	// Values holds one value per selected event, nil when missing.
	Values []any
}
