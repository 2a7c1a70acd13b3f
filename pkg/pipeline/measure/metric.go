package measure

import (
	"sync"
	"time"
)

type DefaultMetric struct {
	mu          *sync.Mutex
	stepElapsed time.Duration
	maxElapsed  time.Duration
	total       int64
	failures    int64
}

func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.total++
	mt.stepElapsed += elapsed

	if elapsed > mt.maxElapsed {
		mt.maxElapsed = elapsed
	}
}

func (mt *DefaultMetric) AddFailure() {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.failures++
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.stepElapsed) / float64(mt.total)))
}

func (mt *DefaultMetric) MaxDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return round(mt.maxElapsed)
}

func (mt *DefaultMetric) Count() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

func (mt *DefaultMetric) Failures() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.failures
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Minute)
	case d > time.Second:
		d = d.Round(time.Millisecond)
	case d > time.Millisecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)
