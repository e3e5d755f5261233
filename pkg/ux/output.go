// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux renders solver results for the quadsolve CLI.
package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/AleutianAI/quadsolve/pkg/quadratic"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette - deep ocean teals
var (
	ColorTealBright = lipgloss.Color("#2CD7C7")
	ColorTealDeep   = lipgloss.Color("#16858E")
	ColorSlate      = lipgloss.Color("#2C4A54")

	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright),
	Muted:   lipgloss.NewStyle().Foreground(ColorSlate),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTealDeep).
		Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return string(i)
	}
}

// Output formats. Auto resolves to Text on a terminal and Plain elsewhere.
const (
	FormatAuto  = "auto"
	FormatText  = "text"
	FormatPlain = "plain"
	FormatJSON  = "json"
)

// Options controls how results are rendered.
type Options struct {
	// Format is one of the Format* constants. Empty means FormatAuto.
	Format string

	// Precision is the number of significant digits; -1 prints the
	// shortest representation that round-trips.
	Precision int

	// Verbose adds the discriminant to text and plain output.
	Verbose bool
}

// ResolveFormat turns FormatAuto into a concrete format for w.
func ResolveFormat(format string, w io.Writer) string {
	switch format {
	case FormatText, FormatPlain, FormatJSON:
		return format
	}
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return FormatText
		}
	}
	return FormatPlain
}

// FormatFloat prints x with the given significant digits (-1 for
// shortest). Negative zero prints as "0".
func FormatFloat(x float64, precision int) string {
	if x == 0 {
		x = 0
	}
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	if precision < 0 {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strconv.FormatFloat(x, 'g', precision, 64)
}

type rootsJSON struct {
	Coefficients quadratic.Coefficients `json:"coefficients"`
	Roots        quadratic.Roots        `json:"roots"`
	Count        int                    `json:"count"`
	Discriminant any                    `json:"discriminant"`
}

type errorJSON struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RenderRoots writes the solution of coeffs to w.
//
// Plain output is one line with the roots separated by spaces; an empty
// line means there are no real roots. Text output is styled for humans.
func RenderRoots(w io.Writer, coeffs quadratic.Coefficients, roots quadratic.Roots, opts Options) error {
	d := coeffs.Discriminant()

	switch ResolveFormat(opts.Format, w) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		return enc.Encode(rootsJSON{
			Coefficients: coeffs,
			Roots:        roots,
			Count:        len(roots),
			Discriminant: quadratic.JSONFloat(d),
		})

	case FormatPlain:
		parts := make([]string, len(roots))
		for i, x := range roots {
			parts[i] = FormatFloat(x, opts.Precision)
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return err
		}
		if opts.Verbose {
			_, err := fmt.Fprintf(w, "discriminant=%s\n", FormatFloat(d, opts.Precision))
			return err
		}
		return nil

	default:
		var b strings.Builder
		b.WriteString(Styles.Title.Render(Equation(coeffs, opts.Precision)))
		b.WriteString("\n")
		switch len(roots) {
		case 0:
			fmt.Fprintf(&b, "%s %s", IconWarning.Render(), Styles.Warning.Render("no real roots"))
		case 1:
			fmt.Fprintf(&b, "%s x = %s %s", IconSuccess.Render(),
				FormatFloat(roots[0], opts.Precision), Styles.Muted.Render("(repeated root)"))
		default:
			fmt.Fprintf(&b, "%s x₁ = %s\n", IconSuccess.Render(), FormatFloat(roots[0], opts.Precision))
			fmt.Fprintf(&b, "%s x₂ = %s", IconSuccess.Render(), FormatFloat(roots[1], opts.Precision))
		}
		if opts.Verbose {
			fmt.Fprintf(&b, "\n%s", Styles.Muted.Render("D = "+FormatFloat(d, opts.Precision)))
		}
		_, err := fmt.Fprintln(w, Styles.Box.Render(b.String()))
		return err
	}
}

// RenderError writes err to w in the requested format. The error code from
// quadratic.Code is always included.
func RenderError(w io.Writer, err error, opts Options) error {
	code := quadratic.Code(err)

	switch ResolveFormat(opts.Format, w) {
	case FormatJSON:
		return json.NewEncoder(w).Encode(errorJSON{Error: code, Message: err.Error()})
	case FormatPlain:
		_, werr := fmt.Fprintf(w, "error: %s: %s\n", code, err.Error())
		return werr
	default:
		_, werr := fmt.Fprintf(w, "%s %s\n", IconError.Render(),
			Styles.Error.Render(fmt.Sprintf("%s: %s", code, err.Error())))
		return werr
	}
}

// Equation renders "ax² + bx + c = 0" with signs folded into the operators.
func Equation(c quadratic.Coefficients, precision int) string {
	term := func(x float64) (string, string) {
		if x < 0 {
			return "-", FormatFloat(-x, precision)
		}
		return "+", FormatFloat(x, precision)
	}
	bSign, bAbs := term(c.B)
	cSign, cAbs := term(c.C)
	return fmt.Sprintf("%sx² %s %sx %s %s = 0", FormatFloat(c.A, precision), bSign, bAbs, cSign, cAbs)
}
