// Package derive holds the steps deriving statistics from collected model data.
package derive

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/askiada/go-derive/pkg/analytics"
	"github.com/askiada/go-derive/pkg/pipeline"
)

// None is the parameters of steps without configuration.
type None struct{}

// Numeric keeps the present values of a numeric column.
type Numeric struct {
	pipeline.StepBase[None, analytics.Column, []float64]
}

// NewNumeric returns a Numeric step.
func NewNumeric() pipeline.Step[None, analytics.Column, []float64] {
	return Numeric{}
}

func (Numeric) Transform(_ context.Context, col analytics.Column) ([]float64, error) {
	if col.Dimension.DataType != analytics.Numeric {
		return nil, errors.Wrap(ErrNotNumeric, col.Dimension.Name)
	}

	values := make([]float64, 0, len(col.Values))

	for _, raw := range col.Values {
		if raw == nil {
			continue
		}

		val, ok := raw.(float64)
		if !ok {
			return nil, errors.Wrapf(ErrNotNumeric, "%s holds %T", col.Dimension.Name, raw)
		}

		values = append(values, val)
	}

	return values, nil
}

// Quality describes the completeness of a column.
type Quality struct {
	Count       int
	Missing     int
	Cardinality int
}

// MissingRatio returns the share of missing values, 0 for an empty column.
func (q Quality) MissingRatio() float64 {
	if q.Count == 0 {
		return 0
	}

	return float64(q.Missing) / float64(q.Count)
}

// DataQuality counts the values, missing values and distinct values of a column.
type DataQuality struct {
	pipeline.StepBase[None, analytics.Column, Quality]
}

// NewDataQuality returns a DataQuality step.
func NewDataQuality() pipeline.Step[None, analytics.Column, Quality] {
	return DataQuality{}
}

func (DataQuality) Transform(_ context.Context, col analytics.Column) (Quality, error) {
	distinct := make(map[any]struct{})
	quality := Quality{Count: len(col.Values)}

	for _, val := range col.Values {
		if val == nil {
			quality.Missing++

			continue
		}

		distinct[val] = struct{}{}
	}

	quality.Cardinality = len(distinct)

	return quality, nil
}

// Category is the number of occurrences of a categorical value.
type Category struct {
	Value string
	Count int
}

// TopCategories returns the K most frequent values of a categorical column, by
// decreasing count then value. A K lower than 1 keeps every value.
type TopCategories struct {
	pipeline.StepBase[int, analytics.Column, []Category]
}

// NewTopCategories returns the step keeping the k most frequent values.
func NewTopCategories(k int) pipeline.Step[int, analytics.Column, []Category] {
	return TopCategories{pipeline.StepBase[int, analytics.Column, []Category]{Params: k}}
}

func (t TopCategories) Transform(_ context.Context, col analytics.Column) ([]Category, error) {
	if col.Dimension.DataType != analytics.Categorical {
		return nil, errors.Wrap(ErrNotCategorical, col.Dimension.Name)
	}

	counts := make(map[string]int)

	for _, raw := range col.Values {
		if raw == nil {
			continue
		}

		val, ok := raw.(string)
		if !ok {
			return nil, errors.Wrapf(ErrNotCategorical, "%s holds %T", col.Dimension.Name, raw)
		}

		counts[val]++
	}

	categories := make([]Category, 0, len(counts))
	for val, count := range counts {
		categories = append(categories, Category{Value: val, Count: count})
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}

		return categories[i].Value < categories[j].Value
	})

	if t.Params > 0 && len(categories) > t.Params {
		categories = categories[:t.Params]
	}

	return categories, nil
}
