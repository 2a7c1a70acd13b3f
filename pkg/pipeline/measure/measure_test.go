package measure_test

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-derive/pkg/pipeline/measure"
	"github.com/askiada/go-derive/pkg/pipeline/model"
)

func TestDefaultMeasure(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	assert.Nil(t, msr.GetMetric("step"))

	mt := msr.AddMetric("step")
	assert.Same(t, mt, msr.AddMetric("step"))
	assert.Same(t, mt, msr.GetMetric("step"))

	mt.AddDuration(10 * time.Millisecond)
	mt.AddDuration(30 * time.Millisecond)
	mt.AddFailure()

	assert.Equal(t, 20*time.Millisecond, mt.AVGDuration())
	assert.Equal(t, 30*time.Millisecond, mt.MaxDuration())
	assert.Equal(t, int64(2), mt.Count())
	assert.Equal(t, int64(1), mt.Failures())

	all := msr.AllMetrics()
	assert.Len(t, all, 1)
	delete(all, "step")
	assert.NotNil(t, msr.GetMetric("step"))
}

func TestDefaultMetricEmpty(t *testing.T) {
	t.Parallel()

	mt := measure.NewDefaultMeasure().AddMetric("step")
	assert.Zero(t, mt.AVGDuration())
	assert.Zero(t, mt.MaxDuration())
}

func TestDefaultMeasureConcurrent(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	wgrp := sync.WaitGroup{}

	for i := 0; i < 20; i++ {
		wgrp.Add(1)

		go func() {
			defer wgrp.Done()
			msr.AddMetric("step").AddDuration(time.Millisecond)
		}()
	}

	wgrp.Wait()
	assert.Equal(t, int64(20), msr.GetMetric("step").Count())
}

func TestHook(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	hook := measure.Hook(msr)

	run := model.NewRun(0, 2, 2)
	first := model.StepInfo{Index: 0, Variant: "pkg/derive.Numeric"}
	second := model.StepInfo{Index: 1, Variant: "pkg/derive.Mean"}

	hook.OnStart(run)
	hook.AfterStep(run, first, 2*time.Millisecond, nil)
	hook.AfterStep(run, second, 0, assert.AnError)
	hook.OnFinish(run, 3*time.Millisecond, assert.AnError)

	hook.AfterStep(run, first, 4*time.Millisecond, nil)
	hook.OnFinish(run, 5*time.Millisecond, nil)

	require.NotNil(t, msr.GetMetric("0:derive.Numeric"))
	assert.Equal(t, 3*time.Millisecond, msr.GetMetric("0:derive.Numeric").AVGDuration())
	assert.Equal(t, int64(1), msr.GetMetric("1:derive.Mean").Failures())
	assert.Zero(t, msr.GetMetric("1:derive.Mean").Count())

	end := msr.GetMetric(model.EndStep.Name())
	require.NotNil(t, end)
	assert.Equal(t, int64(1), end.Count())
	assert.Equal(t, int64(1), end.Failures())
	assert.Equal(t, 5*time.Millisecond, end.AVGDuration())
}

func TestPrometheusHook(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	hook, err := measure.NewPrometheusHook(reg, "test")
	require.NoError(t, err)

	full := model.NewRun(0, 2, 2)
	part := model.NewRun(1, 2, 2)
	step := model.StepInfo{Index: 1, Variant: "github.com/askiada/go-derive/pkg/derive.Mean"}

	hook.AfterStep(full, step, time.Millisecond, nil)
	hook.OnFinish(full, time.Millisecond, nil)
	hook.AfterStep(part, step, time.Millisecond, assert.AnError)
	hook.OnFinish(part, time.Millisecond, assert.AnError)

	assert.InDelta(t, 1, testutil.ToFloat64(hook.Executions.WithLabelValues("success", "false")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(hook.Executions.WithLabelValues("failure", "true")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(hook.StepFailures.WithLabelValues("derive.Mean")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(hook.StepDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(hook.Duration))

	_, err = measure.NewPrometheusHook(reg, "test")
	require.Error(t, err)
}
