package derive

import (
	"context"
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/askiada/go-derive/pkg/pipeline"
)

// Bin is a histogram bin over [Low, High). The last bin also holds High.
type Bin struct {
	Low, High float64
	Count     int
}

// HistogramParams configures Histogram.
type HistogramParams struct {
	Bins int `yaml:"bins"`
}

// Histogram splits the range of the values into equal width bins. Infinite and NaN
// values are rejected with ErrNotFinite.
type Histogram struct {
	pipeline.StepBase[HistogramParams, []float64, []Bin]
}

// NewHistogram returns a Histogram step with the given number of bins.
func NewHistogram(bins int) pipeline.Step[HistogramParams, []float64, []Bin] {
	return Histogram{pipeline.StepBase[HistogramParams, []float64, []Bin]{Params: HistogramParams{Bins: bins}}}
}

func (h Histogram) Transform(_ context.Context, values []float64) ([]Bin, error) {
	if h.Params.Bins < 1 {
		return nil, errors.Wrapf(ErrInvalidParameters, "histogram needs at least one bin, got %d", h.Params.Bins)
	}

	if len(values) == 0 {
		return []Bin{}, nil
	}

	low, high := values[0], values[0]
	for _, val := range values {
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return nil, errors.Wrapf(ErrNotFinite, "histogram of %v", val)
		}

		low = math.Min(low, val)
		high = math.Max(high, val)
	}

	width := (high - low) / float64(h.Params.Bins)

	bins := make([]Bin, h.Params.Bins)
	for i := range bins {
		bins[i].Low = low + float64(i)*width
		bins[i].High = low + float64(i+1)*width
	}

	bins[len(bins)-1].High = high

	for _, val := range values {
		idx := len(bins) - 1
		if width > 0 {
			idx = int((val - low) / width)
			if idx >= len(bins) {
				idx = len(bins) - 1
			}
		}

		bins[idx].Count++
	}

	return bins, nil
}

// Mean is the arithmetic mean of the values.
type Mean struct {
	pipeline.StepBase[None, []float64, float64]
}

// NewMean returns a Mean step.
func NewMean() pipeline.Step[None, []float64, float64] {
	return Mean{}
}

func (Mean) Transform(_ context.Context, values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}

	var sum float64
	for _, val := range values {
		sum += val
	}

	return sum / float64(len(values)), nil
}

// Quantile is the q-quantile of the values, linearly interpolated between ranks.
type Quantile struct {
	pipeline.StepBase[float64, []float64, float64]
}

// NewQuantile returns the step computing the q-quantile, q being within [0, 1].
func NewQuantile(q float64) pipeline.Step[float64, []float64, float64] {
	return Quantile{pipeline.StepBase[float64, []float64, float64]{Params: q}}
}

func (q Quantile) Transform(_ context.Context, values []float64) (float64, error) {
	if q.Params < 0 || q.Params > 1 || math.IsNaN(q.Params) {
		return 0, errors.Wrapf(ErrInvalidParameters, "quantile must be within [0, 1], got %v", q.Params)
	}

	if len(values) == 0 {
		return 0, ErrEmptyInput
	}

	// the input belongs to the caller
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rank := q.Params * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	frac := rank - float64(lower)

	return sorted[lower] + frac*(sorted[upper]-sorted[lower]), nil
}
