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
	"errors"
	"fmt"
)

// Error kinds returned by Solve. Callers match them with errors.Is; the
// concrete error is usually a *CoefficientError wrapping one of these.
//
// Priority: ErrNonNumericCoefficient is always reported before
// ErrDegenerateCoefficient.
var (
	// ErrNonNumericCoefficient means a, b or c is not a finite real number
	// (±Inf, NaN, or a value of a non-numeric type).
	ErrNonNumericCoefficient = errors.New("quadratic: coefficient must be a finite number")

	// ErrDegenerateCoefficient means |a| <= Epsilon, so the equation is not
	// quadratic.
	ErrDegenerateCoefficient = errors.New("quadratic: coefficient 'a' must be non-zero")
)

// CoefficientError reports which coefficient failed validation.
//
// # Description
//
// The error kind (Kind) is one of the package sentinels and is what callers
// should branch on. Name and Value exist for messages only.
//
// # Example
//
//	roots, err := quadratic.Solve(a, b, c)
//	var cerr *quadratic.CoefficientError
//	if errors.As(err, &cerr) {
//	    fmt.Println(cerr.Name) // "b"
//	}
//	if errors.Is(err, quadratic.ErrNonNumericCoefficient) {
//	    // bad input data
//	}
type CoefficientError struct {
	// Name is "a", "b" or "c".
	Name string

	// Value is the offending input rendered with %v.
	Value string

	// Kind is ErrNonNumericCoefficient or ErrDegenerateCoefficient.
	Kind error
}

// Error returns "<kind>: <name>=<value>".
func (e *CoefficientError) Error() string {
	if e.Name == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s=%s", e.Kind.Error(), e.Name, e.Value)
}

// Unwrap returns the error kind so errors.Is works on the sentinels.
func (e *CoefficientError) Unwrap() error {
	return e.Kind
}

func nonNumeric(name string, value any) error {
	return &CoefficientError{Name: name, Value: describe(value), Kind: ErrNonNumericCoefficient}
}

func degenerate(a float64) error {
	return &CoefficientError{Name: "a", Value: describe(a), Kind: ErrDegenerateCoefficient}
}

func describe(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Error codes reported by Code.
const (
	CodeNonNumeric = "non_numeric_coefficient"
	CodeDegenerate = "degenerate_coefficient"
	CodeUnknown    = "error"
)

// Code maps an error returned by this package to a stable snake_case
// identifier for wire formats and exit messages. nil maps to "".
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNonNumericCoefficient):
		return CodeNonNumeric
	case errors.Is(err, ErrDegenerateCoefficient):
		return CodeDegenerate
	default:
		return CodeUnknown
	}
}
