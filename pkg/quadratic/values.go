// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package quadratic

import (
	"encoding/json"
	"math"
)

// SolveValues solves the equation for coefficients of arbitrary dynamic type.
//
// # Description
//
// Used where coefficients arrive untyped (decoded JSON, generic maps).
// Integer kinds, float kinds and json.Number are accepted. Anything else,
// including nil, strings, booleans and containers, is rejected with
// ErrNonNumericCoefficient. All three values are checked before the
// degenerate check on a runs.
//
// # Examples
//
//	quadratic.SolveValues(1, -3, 2)         // [2 1]
//	quadratic.SolveValues(1, "2", 1)        // ErrNonNumericCoefficient
//	quadratic.SolveValues(nil, 1, 1)        // ErrNonNumericCoefficient
//	quadratic.SolveValues(0, "x", 1)        // ErrNonNumericCoefficient, not degenerate
func SolveValues(a, b, c any) (Roots, error) {
	coeffs, err := CoefficientsOf(a, b, c)
	if err != nil {
		return nil, err
	}
	return coeffs.Solve()
}

// CoefficientsOf converts three dynamic values to Coefficients. Only the
// type/finiteness check is applied here.
func CoefficientsOf(a, b, c any) (Coefficients, error) {
	var out [3]float64
	for i, f := range [...]struct {
		name  string
		value any
	}{{"a", a}, {"b", b}, {"c", c}} {
		x, ok := ToFloat(f.value)
		if !ok {
			return Coefficients{}, nonNumeric(f.name, f.value)
		}
		out[i] = x
	}
	return Coefficients{A: out[0], B: out[1], C: out[2]}, nil
}

// ToFloat reports whether v is a finite real number of a numeric type and
// returns it as float64.
func ToFloat(v any) (float64, bool) {
	var x float64
	switch n := v.(type) {
	case float64:
		x = n
	case float32:
		x = float64(n)
	case int:
		x = float64(n)
	case int8:
		x = float64(n)
	case int16:
		x = float64(n)
	case int32:
		x = float64(n)
	case int64:
		x = float64(n)
	case uint:
		x = float64(n)
	case uint8:
		x = float64(n)
	case uint16:
		x = float64(n)
	case uint32:
		x = float64(n)
	case uint64:
		x = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		x = f
	default:
		return 0, false
	}
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, false
	}
	return x, true
}
