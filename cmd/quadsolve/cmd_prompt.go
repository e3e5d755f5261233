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
	"math"

	"github.com/AleutianAI/quadsolve/pkg/quadratic"
	"github.com/AleutianAI/quadsolve/pkg/validation"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newPromptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Ask for the coefficients interactively, then solve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var raw [3]string

			form := huh.NewForm(
				huh.NewGroup(
					coefficientInput("a", "coefficient of x²", &raw[0]),
					coefficientInput("b", "coefficient of x", &raw[1]),
					coefficientInput("c", "constant term", &raw[2]),
				).Title("a·x² + b·x + c = 0"),
			).
				WithInput(cmd.InOrStdin()).
				WithOutput(cmd.ErrOrStderr()).
				WithAccessible(!isTerminal(cmd.InOrStdin()))

			if err := form.RunWithContext(cmd.Context()); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}

			return a.solveStrings(cmd, raw)
		},
	}
}

func coefficientInput(name, description string, value *string) *huh.Input {
	return huh.NewInput().
		Title(name).
		Description(description).
		Placeholder("0").
		Value(value).
		Validate(coefficientValidator(name))
}

// coefficientValidator rejects input the solver would reject, so the form
// can ask again instead of failing after submission.
func coefficientValidator(name string) func(string) error {
	return func(s string) error {
		x, err := validation.ParseCoefficient(name, s)
		if err != nil {
			return err
		}
		if name == "a" && math.Abs(x) <= quadratic.Epsilon {
			return quadratic.ErrDegenerateCoefficient
		}
		return nil
	}
}
