// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/AleutianAI/quadsolve/pkg/quadratic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solve(t *testing.T, a, b, c float64) (quadratic.Coefficients, quadratic.Roots) {
	t.Helper()
	coeffs := quadratic.Coefficients{A: a, B: b, C: c}
	roots, err := coeffs.Solve()
	require.NoError(t, err)
	return coeffs, roots
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, FormatPlain, ResolveFormat(FormatAuto, &buf), "buffers are not terminals")
	assert.Equal(t, FormatPlain, ResolveFormat("", &buf))
	assert.Equal(t, FormatJSON, ResolveFormat(FormatJSON, &buf))
	assert.Equal(t, FormatText, ResolveFormat(FormatText, &buf))
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		x         float64
		precision int
		want      string
	}{
		{1, -1, "1"},
		{-0.25, -1, "-0.25"},
		{math.Copysign(0, -1), -1, "0"},
		{-1e-20, -1, "-1e-20"},
		{1.0 / 3, 3, "0.333"},
		{math.Inf(1), 3, "+Inf"},
		{math.NaN(), -1, "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.x, tt.precision))
		})
	}
}

func TestRenderRoots_Plain(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    string
	}{
		{"two roots keep order", 1, -1, 0, "1 0\n"},
		{"negative zero printed as zero", 1, 1, 0, "-1 0\n"},
		{"one root", 1, 2, 1, "-1\n"},
		{"no roots is an empty line", 1, 0, 1, "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coeffs, roots := solve(t, tt.a, tt.b, tt.c)
			var buf bytes.Buffer

			require.NoError(t, RenderRoots(&buf, coeffs, roots, Options{Format: FormatPlain, Precision: -1}))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderRoots_PlainVerbose(t *testing.T) {
	coeffs, roots := solve(t, 1, 0, 1)
	var buf bytes.Buffer

	require.NoError(t, RenderRoots(&buf, coeffs, roots, Options{Format: FormatPlain, Precision: -1, Verbose: true}))
	assert.Equal(t, "\ndiscriminant=-4\n", buf.String())
}

func TestRenderRoots_JSON(t *testing.T) {
	coeffs, roots := solve(t, 1, -3, 2)
	var buf bytes.Buffer

	require.NoError(t, RenderRoots(&buf, coeffs, roots, Options{Format: FormatJSON}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []any{2.0, 1.0}, got["roots"])
	assert.Equal(t, 2.0, got["count"])
	assert.Equal(t, 1.0, got["discriminant"])
	assert.Equal(t, map[string]any{"a": 1.0, "b": -3.0, "c": 2.0}, got["coefficients"])
}

func TestRenderRoots_Text(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    []string
	}{
		{"two roots", 1, -3, 2, []string{"1x² - 3x + 2 = 0", "x₁ = 2", "x₂ = 1"}},
		{"one root", 1, 2, 1, []string{"x = -1", "repeated root"}},
		{"no roots", 1, 0, 1, []string{"no real roots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coeffs, roots := solve(t, tt.a, tt.b, tt.c)
			var buf bytes.Buffer

			require.NoError(t, RenderRoots(&buf, coeffs, roots, Options{Format: FormatText, Precision: -1}))
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestRenderRoots_TextIsBoxed(t *testing.T) {
	coeffs, roots := solve(t, 1, -3, 2)
	var buf bytes.Buffer

	require.NoError(t, RenderRoots(&buf, coeffs, roots, Options{Format: FormatText, Precision: -1, Verbose: true}))

	out := buf.String()
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╰")
	assert.Contains(t, out, "D = 1")
}

func TestRenderError(t *testing.T) {
	_, err := quadratic.Solve(0, 1, 1)
	require.Error(t, err)

	var plain bytes.Buffer
	require.NoError(t, RenderError(&plain, err, Options{Format: FormatPlain}))
	assert.True(t, strings.HasPrefix(plain.String(), "error: degenerate_coefficient: "))

	var js bytes.Buffer
	require.NoError(t, RenderError(&js, err, Options{Format: FormatJSON}))
	var got map[string]string
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	assert.Equal(t, quadratic.CodeDegenerate, got["error"])
	assert.Equal(t, err.Error(), got["message"])

	var text bytes.Buffer
	require.NoError(t, RenderError(&text, err, Options{Format: FormatText}))
	assert.Contains(t, text.String(), "degenerate_coefficient")
}

func TestEquation(t *testing.T) {
	assert.Equal(t, "2x² + 0x - 8 = 0", Equation(quadratic.Coefficients{A: 2, B: 0, C: -8}, -1))
	assert.Equal(t, "-1x² - 0.5x + 1 = 0", Equation(quadratic.Coefficients{A: -1, B: -0.5, C: 1}, -1))
}
