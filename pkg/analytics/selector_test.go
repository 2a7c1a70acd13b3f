package analytics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-derive/pkg/analytics"
)

func eventIDs(events []analytics.Event) []string {
	ids := make([]string, len(events))
	for i, event := range events {
		ids[i] = event.ID
	}

	return ids
}

func TestSelect(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		selector analytics.DataSelector
		expected []string
	}{
		"everything": {
			expected: []string{"e1", "e2", "e3"},
		},
		"reference": {
			selector: analytics.DataSelector{Dataset: analytics.Reference},
			expected: []string{"r1"},
		},
		"filter": {
			selector: analytics.DataSelector{Filter: `country == "fr"`},
			expected: []string{"e1", "e3"},
		},
		"filter on missing value": {
			selector: analytics.DataSelector{Filter: "score != nil && score > 0.6"},
			expected: []string{"e3"},
		},
		"filter on id": {
			selector: analytics.DataSelector{Filter: `id in ["e2", "e3"]`},
			expected: []string{"e2", "e3"},
		},
		"event ids": {
			selector: analytics.DataSelector{}.SelectEvents("e3", "e1", "unknown"),
			expected: []string{"e1", "e3"},
		},
		"event ids and filter": {
			selector: analytics.DataSelector{Filter: "age != nil"}.SelectEvents("e3", "e1"),
			expected: []string{"e1"},
		},
		"filter skips missing values": {
			selector: analytics.DataSelector{Filter: "age > 30"},
			expected: []string{"e2"},
		},
		"negated filter skips missing values": {
			selector: analytics.DataSelector{Filter: "not (score > 0.6)"},
			expected: []string{"e1"},
		},
		"spaced event ids": {
			selector: analytics.DataSelector{EventIDs: " e3, e1 ,"},
			expected: []string{"e1", "e3"},
		},
		"nothing": {
			selector: analytics.DataSelector{Filter: "false"},
			expected: []string{},
		},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			events, err := analytics.Select(context.Background(), newTestModel(t), tc.selector)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, eventIDs(events))
		})
	}
}

func TestSelectErrors(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	tcs := map[string]struct {
		selector    analytics.DataSelector
		expectedErr error
	}{
		"syntax": {
			selector:    analytics.DataSelector{Filter: "age >"},
			expectedErr: analytics.ErrInvalidFilter,
		},
		"not a boolean": {
			selector:    analytics.DataSelector{Filter: "age + 1"},
			expectedErr: analytics.ErrInvalidFilter,
		},
		"undefined variable": {
			selector:    analytics.DataSelector{Filter: "height > 30"},
			expectedErr: analytics.ErrInvalidFilter,
		},
		"unknown dataset": {
			selector:    analytics.DataSelector{Dataset: "shadow"},
			expectedErr: analytics.ErrUnknownDataset,
		},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := analytics.Select(context.Background(), m, tc.selector)
			require.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestDataSelector(t *testing.T) {
	t.Parallel()

	sel := analytics.DataSelector{Dimension: "age"}
	assert.Nil(t, sel.IDs())
	assert.Equal(t, analytics.Primary, sel.Role())

	restricted := sel.SelectEvents("b", "a", "b", "")
	assert.Equal(t, []string{"a", "b"}, restricted.IDs())
	assert.Empty(t, sel.EventIDs)

	assert.Equal(t, []string{"a", "b"}, sel.SelectEvents(" b", "a ", " ").IDs())
	assert.Equal(t, []string{"b", "a"}, analytics.DataSelector{EventIDs: "b, ,a"}.IDs())

	// equal selections are equal values
	assert.Equal(t, restricted, sel.SelectEvents("a", "b"))
	assert.True(t, restricted == sel.SelectEvents("b", "a"))
}

func TestDataSelectorYAML(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		doc      string
		expected analytics.DataSelector
	}{
		"unsorted ids": {
			doc:      `{dimension: age, event_ids: "e3,e1"}`,
			expected: analytics.DataSelector{Dimension: "age"}.SelectEvents("e1", "e3"),
		},
		"spaced ids": {
			doc:      `{event_ids: " e1 , e3,e1 ,"}`,
			expected: analytics.DataSelector{}.SelectEvents("e1", "e3"),
		},
		"no ids": {
			doc:      `{dataset: reference, filter: "age > 1"}`,
			expected: analytics.DataSelector{Dataset: analytics.Reference, Filter: "age > 1"},
		},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var sel analytics.DataSelector
			require.NoError(t, yaml.Unmarshal([]byte(tc.doc), &sel))
			assert.Equal(t, tc.expected, sel)
		})
	}
}

func TestProject(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	ctx := context.Background()

	col, err := analytics.Project(ctx, m, analytics.DataSelector{Dimension: "age"})
	require.NoError(t, err)
	assert.Equal(t, "age", col.Dimension.Name)
	assert.Equal(t, []any{30.0, 45.0, nil}, col.Values)

	col, err = analytics.Project(ctx, m, analytics.DataSelector{Dimension: "country", Filter: "age != nil && age > 40"})
	require.NoError(t, err)
	assert.Equal(t, []any{"uk"}, col.Values)

	_, err = analytics.Project(ctx, m, analytics.DataSelector{Dimension: "height"})
	require.ErrorIs(t, err, analytics.ErrUnknownDimension)
}
