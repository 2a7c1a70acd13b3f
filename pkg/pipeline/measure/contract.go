package measure

import "time"

// Measure holds a metric per step name.
type Measure interface {
	// AddMetric returns the metric of name, creating it when needed.
	AddMetric(name string) Metric
	// GetMetric returns the metric of name, nil when there is none.
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the durations of a step over executions.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AddFailure()
	AVGDuration() time.Duration
	MaxDuration() time.Duration
	Count() int64
	Failures() int64
}
