// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package quadratic computes the real roots of a·x² + b·x + c = 0.
//
// # Description
//
// Solve validates the coefficients, computes the discriminant in plain
// float64 arithmetic, and returns zero, one or two real roots. Two distinct
// roots are computed with the conjugate form of the quadratic formula
//
//	q  = -0.5 · (b + sign(b)·√D)
//	x1 = q / a
//	x2 = c / q
//
// which keeps the small root accurate when |b| dominates √(4ac).
//
// # Errors
//
// Validation happens in a fixed order and the first failure wins:
//
//  1. any of a, b, c not finite -> ErrNonNumericCoefficient
//  2. |a| <= Epsilon            -> ErrDegenerateCoefficient
//
// No partial result is returned alongside an error.
//
// # Thread Safety
//
// Every function in this package is pure and safe for concurrent use.
//
// # Limitations
//
// The discriminant is not protected against overflow. For astronomically
// large inputs b² may overflow to +Inf and the returned roots may be
// infinite or NaN; that result is passed through unchanged.
package quadratic

import "math"

// Epsilon is the absolute tolerance used to decide that a value is zero.
// It applies to the leading coefficient and to the discriminant.
const Epsilon = 1e-9

// Roots holds 0, 1 or 2 real roots. For two roots the order is
// [q/a, c/q] and is part of the contract.
type Roots []float64

// Coefficients is the ordered triple (a, b, c).
type Coefficients struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
	C float64 `json:"c" yaml:"c"`
}

// Validate applies the finiteness check to all three coefficients and then
// the degenerate check to A.
func (c Coefficients) Validate() error {
	for _, f := range [...]struct {
		name  string
		value float64
	}{{"a", c.A}, {"b", c.B}, {"c", c.C}} {
		if !isFinite(f.value) {
			return nonNumeric(f.name, f.value)
		}
	}
	if isZero(c.A) {
		return degenerate(c.A)
	}
	return nil
}

// Discriminant returns b² - 4ac for the receiver.
func (c Coefficients) Discriminant() float64 {
	return Discriminant(c.A, c.B, c.C)
}

// Solve is shorthand for Solve(c.A, c.B, c.C).
func (c Coefficients) Solve() (Roots, error) {
	return Solve(c.A, c.B, c.C)
}

// Discriminant returns b² - 4ac computed in plain float64.
func Discriminant(a, b, c float64) float64 {
	return b*b - 4*a*c
}

// Solve returns the real roots of a·x² + b·x + c = 0.
//
// # Outputs
//
//   - Roots: empty (non-nil) when D < -Epsilon, one root -b/(2a) when
//     |D| <= Epsilon, otherwise [q/a, c/q].
//   - error: a *CoefficientError wrapping ErrNonNumericCoefficient or
//     ErrDegenerateCoefficient.
//
// # Examples
//
//	quadratic.Solve(1, -1, 0)  // [1 0]
//	quadratic.Solve(1, 1, 0)   // [-1 0]
//	quadratic.Solve(1, 0, 1)   // []
//	quadratic.Solve(0, 1, 1)   // ErrDegenerateCoefficient
func Solve(a, b, c float64) (Roots, error) {
	coeffs := Coefficients{A: a, B: b, C: c}
	if err := coeffs.Validate(); err != nil {
		return nil, err
	}

	d := coeffs.Discriminant()

	if d < -Epsilon {
		return Roots{}, nil
	}

	if isZero(d) {
		return Roots{-b / (2 * a)}, nil
	}

	q := -0.5 * (b + signOf(b)*math.Sqrt(d))
	return Roots{q / a, c / q}, nil
}

// signOf returns -1 for negative b and +1 otherwise. Negative zero is
// treated as positive, unlike math.Copysign.
func signOf(b float64) float64 {
	if b < 0 {
		return -1
	}
	return 1
}

func isZero(x float64) bool {
	return math.Abs(x) <= Epsilon
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
