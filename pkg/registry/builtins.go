package registry

import (
	"github.com/askiada/go-derive/pkg/analytics"
	"github.com/askiada/go-derive/pkg/collector"
	"github.com/askiada/go-derive/pkg/derive"
	"github.com/askiada/go-derive/pkg/pipeline"
)

// Default returns a registry holding the collectors and derivation steps of this
// module.
func Default() *Registry {
	reg := New()

	reg.MustRegister("events", Of(collector.NewEvents))
	reg.MustRegister("column", Of(collector.NewColumn))
	reg.MustRegister("count", Of(collector.NewCount))

	reg.MustRegister("numeric", Of(func(derive.None) pipeline.Step[derive.None, analytics.Column, []float64] {
		return derive.NewNumeric()
	}))
	reg.MustRegister("quality", Of(func(derive.None) pipeline.Step[derive.None, analytics.Column, derive.Quality] {
		return derive.NewDataQuality()
	}))
	reg.MustRegister("top_categories", Of(derive.NewTopCategories))
	reg.MustRegister("histogram", Of(func(p derive.HistogramParams) pipeline.Step[derive.HistogramParams, []float64, []derive.Bin] {
		return derive.NewHistogram(p.Bins)
	}))
	reg.MustRegister("mean", Of(func(derive.None) pipeline.Step[derive.None, []float64, float64] {
		return derive.NewMean()
	}))
	reg.MustRegister("quantile", Of(derive.NewQuantile))

	return reg
}
