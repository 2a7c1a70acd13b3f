package measure

import (
	"sync"
)

// DefaultMeasure keeps metrics in memory. It is safe for concurrent use.
type DefaultMeasure struct {
	mu    sync.RWMutex
	steps map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		steps: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.steps[name]; ok {
		return mt
	}

	mt := &DefaultMetric{mu: &sync.Mutex{}}
	m.steps[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.steps[name]
}

// AllMetrics returns a copy of the metrics by step name.
func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make(map[string]Metric, len(m.steps))
	for name, mt := range m.steps {
		all[name] = mt
	}

	return all
}

var _ Measure = (*DefaultMeasure)(nil)
