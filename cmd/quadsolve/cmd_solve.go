// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"errors"

	"github.com/AleutianAI/quadsolve/pkg/validation"
	"github.com/AleutianAI/quadsolve/pkg/ux"
	"github.com/spf13/cobra"
)

var errCoefficientArgs = errors.New("expected three coefficients: either as arguments or via -a, -b and -c")

func newSolveCmd(a *app) *cobra.Command {
	var flagA, flagB, flagC string

	cmd := &cobra.Command{
		Use:   "solve [a b c]",
		Short: "Solve a·x² + b·x + c = 0 for the given coefficients",
		Long: `Solve prints the real roots of a·x² + b·x + c = 0.

Coefficients are given either as three arguments or with -a, -b and -c.
Flags must come before arguments. If the first coefficient is negative,
separate the arguments with "--" or use the flags.`,
		Example: `  quadsolve solve 1 -3 2
  quadsolve solve -- -1 0 4
  quadsolve solve -a -1 -b 0 -c 4
  quadsolve solve -o json 1 2 1`,
		Args: func(cmd *cobra.Command, args []string) error {
			flagsSet := cmd.Flags().Changed("a") || cmd.Flags().Changed("b") || cmd.Flags().Changed("c")
			switch {
			case len(args) == 3 && !flagsSet:
				return nil
			case len(args) == 0 && flagsSet:
				return nil
			default:
				return errCoefficientArgs
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := [3]string{flagA, flagB, flagC}
			if len(args) == 3 {
				copy(raw[:], args)
			}
			return a.solveStrings(cmd, raw)
		},
	}

	// Stop flag parsing at the first positional so "1 -3 2" works.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&flagA, "a", "a", "", "coefficient of x²")
	cmd.Flags().StringVarP(&flagB, "b", "b", "", "coefficient of x")
	cmd.Flags().StringVarP(&flagC, "c", "c", "", "constant term")
	return cmd
}

// solveStrings parses raw coefficients, solves and renders the result.
func (a *app) solveStrings(cmd *cobra.Command, raw [3]string) error {
	coeffs, err := validation.ParseCoefficients(raw[0], raw[1], raw[2])
	if err != nil {
		a.solver.Reject(cmd.Context(), err)
		return a.reportError(cmd, err)
	}

	res, err := a.solver.Solve(cmd.Context(), coeffs.A, coeffs.B, coeffs.C)
	if err != nil {
		return a.reportError(cmd, err)
	}

	return ux.RenderRoots(cmd.OutOrStdout(), res.Coefficients, res.Roots, a.renderOptions())
}
