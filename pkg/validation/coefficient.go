// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation parses user-provided coefficient text.
//
// Coefficients typed on the command line, in a form, or in a query string
// are turned into float64 here. Every rejection is reported as
// quadratic.ErrNonNumericCoefficient so callers see the same error kind no
// matter where the bad value came from.
package validation

import (
	"strconv"
	"strings"

	"github.com/AleutianAI/quadsolve/pkg/quadratic"
)

// MaxCoefficientLength bounds the raw input size. 64 bytes covers every
// float64 literal, including long decimal expansions.
const MaxCoefficientLength = 64

// ParseCoefficient parses a single coefficient.
//
// Valid input:
//   - decimal or scientific notation ("3", "-0.25", "1e-20", "+4E3")
//   - hexadecimal float literals accepted by strconv ("0x1p-2")
//   - surrounding whitespace is ignored
//
// Rejected input (all as ErrNonNumericCoefficient):
//   - empty or longer than MaxCoefficientLength
//   - anything strconv cannot parse ("abc", "1,5", "[1]")
//   - "inf", "infinity", "nan" in any case
//   - literals outside the float64 range ("1e400")
//
// Example:
//
//	a, err := validation.ParseCoefficient("a", args[0])
//	if err != nil {
//	    return err
//	}
func ParseCoefficient(name, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" || len(s) > MaxCoefficientLength {
		return 0, reject(name, raw)
	}

	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, reject(name, raw)
	}
	if _, ok := quadratic.ToFloat(x); !ok {
		return 0, reject(name, raw)
	}
	return x, nil
}

// ParseCoefficients parses a, b and c in that order and returns the first
// failure.
func ParseCoefficients(a, b, c string) (quadratic.Coefficients, error) {
	var out [3]float64
	for i, f := range [...]struct{ name, raw string }{{"a", a}, {"b", b}, {"c", c}} {
		x, err := ParseCoefficient(f.name, f.raw)
		if err != nil {
			return quadratic.Coefficients{}, err
		}
		out[i] = x
	}
	return quadratic.Coefficients{A: out[0], B: out[1], C: out[2]}, nil
}

func reject(name, raw string) error {
	if len(raw) > MaxCoefficientLength {
		raw = raw[:MaxCoefficientLength] + "..."
	}
	return &quadratic.CoefficientError{
		Name:  name,
		Value: strconv.Quote(raw),
		Kind:  quadratic.ErrNonNumericCoefficient,
	}
}
