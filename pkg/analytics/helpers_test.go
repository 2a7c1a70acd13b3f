package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-derive/pkg/analytics"
)

var day = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) *analytics.MemoryModel {
	t.Helper()

	m, err := analytics.NewMemoryModel(
		analytics.Dimension{Name: "age", Type: analytics.Feature, DataType: analytics.Numeric},
		analytics.Dimension{Name: "country", Type: analytics.Tag, DataType: analytics.Categorical},
		analytics.Dimension{Name: "score", Type: analytics.Prediction, DataType: analytics.Numeric},
	)
	require.NoError(t, err)

	err = m.AddEvents(analytics.Primary,
		analytics.Event{ID: "e1", Timestamp: day, Values: map[string]any{"age": 30, "country": "fr", "score": 0.5}},
		analytics.Event{ID: "e2", Timestamp: day.Add(time.Hour), Values: map[string]any{"age": 45, "country": "uk"}},
		analytics.Event{ID: "e3", Timestamp: day.Add(2 * time.Hour), Values: map[string]any{"country": "fr", "score": 0.9}},
	)
	require.NoError(t, err)

	err = m.AddEvents(analytics.Reference,
		analytics.Event{ID: "r1", Timestamp: day, Values: map[string]any{"age": 50}},
	)
	require.NoError(t, err)

	return m
}
