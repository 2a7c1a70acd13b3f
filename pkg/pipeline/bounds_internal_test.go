package pipeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClip(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		n, start, stop int
		lo, hi         int
	}{
		"full":                {n: 3, start: 0, stop: 3, lo: 0, hi: 3},
		"negative stop":       {n: 3, start: 0, stop: -1, lo: 0, hi: 2},
		"negative start":      {n: 3, start: -2, stop: 3, lo: 1, hi: 3},
		"start below zero":    {n: 3, start: -5, stop: 2, lo: 0, hi: 2},
		"stop above length":   {n: 3, start: 1, stop: 10, lo: 1, hi: 3},
		"start above length":  {n: 3, start: 5, stop: 9, lo: 3, hi: 3},
		"inverted":            {n: 3, start: 2, stop: 1, lo: 2, hi: 2},
		"both below zero":     {n: 3, start: -9, stop: -7, lo: 0, hi: 0},
		"empty sequence":      {n: 0, start: -1, stop: 1, lo: 0, hi: 0},
		"negative both valid": {n: 4, start: -3, stop: -1, lo: 1, hi: 3},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lo, hi := clip(tc.n, tc.start, tc.stop)
			assert.Equal(t, tc.lo, lo)
			assert.Equal(t, tc.hi, hi)
		})
	}
}

func TestVariantOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<nil>", variantOf(nil))
	assert.Equal(t, "int", variantOf(1))
	assert.Equal(t, "github.com/askiada/go-derive/pkg/pipeline.Stage", variantOf(&Stage{}))
}

type fingerprintParams struct {
	Name   string
	Ratio  float64
	Extra  any
	Labels map[string]int
	Values []float32
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	anyType := typeOf[any]()
	structType := typeOf[fingerprintParams]()

	tcs := map[string]struct {
		ptype    reflect.Type
		params   any
		expected string
	}{
		"int":           {ptype: typeOf[int](), params: 1, expected: "v(1)"},
		"negative zero": {ptype: typeOf[float64](), params: math.Copysign(0, -1), expected: "v(0)"},
		"nan":           {ptype: typeOf[float64](), params: math.NaN(), expected: "v(NaN)"},
		"string":        {ptype: typeOf[string](), params: `a"b`, expected: `v("a\"b")`},
		"any int":       {ptype: anyType, params: 1, expected: "v(int(1))"},
		"any int64":     {ptype: anyType, params: int64(1), expected: "v(int64(1))"},
		"any nil":       {ptype: anyType, params: nil, expected: "v(nil)"},
		"empty struct":  {ptype: typeOf[struct{}](), params: struct{}{}, expected: "v(struct {}{})"},
		"struct": {
			ptype: structType,
			params: fingerprintParams{
				Name:   "x",
				Ratio:  0.5,
				Extra:  []int{1},
				Labels: map[string]int{"b": 2, "a": 1},
				Values: []float32{1.5},
			},
			expected: `v(pipeline.fingerprintParams{Name:"x", Ratio:0.5, Extra:[]int([]int{1}), ` +
				`Labels:map[string]int{"a":1, "b":2}, Values:[]float32{1.5}})`,
		},
		"struct zero": {
			ptype:    structType,
			params:   fingerprintParams{},
			expected: `v(pipeline.fingerprintParams{Name:"", Ratio:0, Extra:nil, Labels:(map[string]int)(nil), Values:([]float32)(nil)})`,
		},
		"array":       {ptype: typeOf[[2]int](), params: [2]int{1, 2}, expected: "v([2]int{1, 2})"},
		"nil pointer": {ptype: typeOf[*int](), params: (*int)(nil), expected: "v((*int)(nil))"},
	}

	for name, tc := range tcs {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, fingerprint("v", tc.ptype, tc.params))
		})
	}
}
