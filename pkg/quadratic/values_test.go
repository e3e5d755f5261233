// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package quadratic

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		// Accepted
		{"float64", 1.5, 1.5, true},
		{"float32", float32(2.5), 2.5, true},
		{"int", 3, 3, true},
		{"int8", int8(-4), -4, true},
		{"int64", int64(1 << 40), 1 << 40, true},
		{"uint8", uint8(7), 7, true},
		{"uint64", uint64(9), 9, true},
		{"json number", json.Number("-2.5e3"), -2500, true},

		// Rejected
		{"nil", nil, 0, false},
		{"string", "1", 0, false},
		{"bool", true, 0, false},
		{"slice", []float64{1}, 0, false},
		{"map", map[string]any{"a": 1}, 0, false},
		{"struct", struct{}{}, 0, false},
		{"pointer", new(float64), 0, false},
		{"+Inf", math.Inf(1), 0, false},
		{"-Inf float32", float32(math.Inf(-1)), 0, false},
		{"NaN", math.NaN(), 0, false},
		{"bad json number", json.Number("abc"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.value)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSolveValues_MatchesSolve(t *testing.T) {
	got, err := SolveValues(1, int64(-3), json.Number("2"))
	require.NoError(t, err)

	want, err := Solve(1, -3, 2)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestSolveValues_NonNumeric(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  any
		wantName string
	}{
		{"text a", "one", 1, 1, "a"},
		{"text b", 1, "2", 1, "b"},
		{"container c", 1, 1, []any{1}, "c"},
		{"absent b", 1, nil, 1, "b"},
		{"infinite c", 1, 1, math.Inf(1), "c"},
		{"NaN a", math.NaN(), 1, 1, "a"},
		{"text wins over zero a", 0, "x", 1, "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := SolveValues(tt.a, tt.b, tt.c)

			assert.Nil(t, roots)
			require.ErrorIs(t, err, ErrNonNumericCoefficient)

			var cerr *CoefficientError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.wantName, cerr.Name)
		})
	}
}

func TestSolveValues_Degenerate(t *testing.T) {
	_, err := SolveValues(0, 1, 1)
	assert.ErrorIs(t, err, ErrDegenerateCoefficient)

	_, err = SolveValues(1e-20, 1e-20, 1e-20)
	assert.ErrorIs(t, err, ErrDegenerateCoefficient)
}

func TestCoefficientsOf(t *testing.T) {
	c, err := CoefficientsOf(uint16(1), -2.5, int32(4))

	require.NoError(t, err)
	assert.Equal(t, Coefficients{A: 1, B: -2.5, C: 4}, c)
}
