package measure

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/askiada/go-derive/pkg/pipeline/model"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// PrometheusHook exports execution metrics to Prometheus.
type PrometheusHook struct {
	model.NopHook

	Executions   *prometheus.CounterVec
	Duration     prometheus.Histogram
	StepDuration *prometheus.HistogramVec
	StepFailures *prometheus.CounterVec
}

// NewPrometheusHook creates the collectors under namespace and registers them to reg.
func NewPrometheusHook(reg prometheus.Registerer, namespace string) (*PrometheusHook, error) {
	ph := &PrometheusHook{
		Executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "executions_total",
			Help:      "Total number of pipeline executions",
		}, []string{"status", "partial"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Duration of pipeline executions in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		StepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "step",
			Name:      "duration_seconds",
			Help:      "Duration of successful step transforms in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"variant"}),
		StepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "step",
			Name:      "failures_total",
			Help:      "Total number of failed step transforms",
		}, []string{"variant"}),
	}

	for _, collector := range []prometheus.Collector{ph.Executions, ph.Duration, ph.StepDuration, ph.StepFailures} {
		err := reg.Register(collector)
		if err != nil {
			return nil, errors.Wrap(err, "unable to register collector")
		}
	}

	return ph, nil
}

func (ph *PrometheusHook) AfterStep(_ model.RunInfo, step model.StepInfo, elapsed time.Duration, err error) {
	variant := model.ShortVariant(step.Variant)
	if err != nil {
		ph.StepFailures.WithLabelValues(variant).Inc()

		return
	}

	ph.StepDuration.WithLabelValues(variant).Observe(elapsed.Seconds())
}

func (ph *PrometheusHook) OnFinish(run model.RunInfo, elapsed time.Duration, err error) {
	partial := "false"
	if run.Partial() {
		partial = "true"
	}

	if err != nil {
		ph.Executions.WithLabelValues(statusFailure, partial).Inc()

		return
	}

	ph.Executions.WithLabelValues(statusSuccess, partial).Inc()
	ph.Duration.Observe(elapsed.Seconds())
}

var _ model.Hook = (*PrometheusHook)(nil)
