package analytics

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// MemoryModel is a Model held in memory. It is safe for concurrent use.
type MemoryModel struct {
	mu       sync.RWMutex
	dims     []Dimension
	byName   map[string]Dimension
	datasets map[DatasetRole][]Event
	ids      map[DatasetRole]map[string]struct{}
}

// NewMemoryModel creates an empty model over dims.
func NewMemoryModel(dims ...Dimension) (*MemoryModel, error) {
	m := &MemoryModel{
		byName:   make(map[string]Dimension, len(dims)),
		datasets: make(map[DatasetRole][]Event),
		ids:      make(map[DatasetRole]map[string]struct{}),
	}

	for _, dim := range dims {
		err := validateDimension(dim)
		if err != nil {
			return nil, err
		}

		if _, ok := m.byName[dim.Name]; ok {
			return nil, errors.Wrap(ErrDuplicateDimension, dim.Name)
		}

		m.byName[dim.Name] = dim
		m.dims = append(m.dims, dim)
	}

	return m, nil
}

func validateDimension(dim Dimension) error {
	if dim.Name == "" {
		return errors.Wrap(ErrInvalidDimension, "name must be set")
	}

	switch dim.Type {
	case Feature, Tag, Prediction, Actual:
	default:
		return errors.Wrapf(ErrInvalidDimension, "%s: unknown type %q", dim.Name, dim.Type)
	}

	switch dim.DataType {
	case Numeric, Categorical:
	default:
		return errors.Wrapf(ErrInvalidDimension, "%s: unknown data type %q", dim.Name, dim.DataType)
	}

	return nil
}

// AddEvents appends events to the dataset role. Values are normalised to float64
// for numeric dimensions and to string for categorical ones. Nothing is added when
// an event is invalid.
func (m *MemoryModel) AddEvents(role DatasetRole, events ...Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := m.ids[role]
	if seen == nil {
		seen = make(map[string]struct{})
	}

	added := make(map[string]struct{}, len(events))
	normalised := make([]Event, 0, len(events))

	for _, event := range events {
		if _, ok := seen[event.ID]; ok {
			return errors.Wrapf(ErrDuplicateEvent, "%s in %s", event.ID, role)
		}

		if _, ok := added[event.ID]; ok {
			return errors.Wrapf(ErrDuplicateEvent, "%s in %s", event.ID, role)
		}

		values := make(map[string]any, len(event.Values))
		for name, raw := range event.Values {
			dim, ok := m.byName[name]
			if !ok {
				return errors.Wrapf(ErrUnknownDimension, "%s in event %s", name, event.ID)
			}

			value, err := normalise(dim, raw)
			if err != nil {
				return errors.Wrapf(err, "event %s", event.ID)
			}

			if value != nil {
				values[name] = value
			}
		}

		added[event.ID] = struct{}{}
		normalised = append(normalised, Event{ID: event.ID, Timestamp: event.Timestamp, Values: values})
	}

	for id := range added {
		seen[id] = struct{}{}
	}

	m.ids[role] = seen
	m.datasets[role] = append(m.datasets[role], normalised...)

	return nil
}

func normalise(dim Dimension, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}

	if dim.DataType == Categorical {
		switch val := raw.(type) {
		case string:
			return val, nil
		case bool, int, int64, float64:
			return fmt.Sprint(val), nil
		}

		return nil, errors.Wrapf(ErrInvalidValue, "%s: %T is not categorical", dim.Name, raw)
	}

	switch val := raw.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	}

	return nil, errors.Wrapf(ErrInvalidValue, "%s: %T is not numeric", dim.Name, raw)
}

// Dimensions returns the dimensions in declaration order.
func (m *MemoryModel) Dimensions() []Dimension {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]Dimension(nil), m.dims...)
}

// Dimension returns the dimension called name.
func (m *MemoryModel) Dimension(name string) (Dimension, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dim, ok := m.byName[name]

	return dim, ok
}

// Events returns a copy of the events of the dataset role.
func (m *MemoryModel) Events(ctx context.Context, role DatasetRole) ([]Event, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	events, ok := m.datasets[role]
	if !ok {
		return nil, errors.Wrap(ErrUnknownDataset, string(role))
	}

	res := make([]Event, len(events))
	for i, event := range events {
		values := make(map[string]any, len(event.Values))
		for k, v := range event.Values {
			values[k] = v
		}

		res[i] = Event{ID: event.ID, Timestamp: event.Timestamp, Values: values}
	}

	return res, nil
}

var _ Model = (*MemoryModel)(nil)
