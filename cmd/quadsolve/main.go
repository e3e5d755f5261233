// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command quadsolve finds the real roots of a·x² + b·x + c = 0 from the
// command line, an interactive prompt, or over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AleutianAI/quadsolve/pkg/quadratic"
)

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitNonNumeric = 2
	exitDegenerate = 3
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command tree and maps the result to an exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	return (&app{}).execute(ctx, args, in, out, errOut)
}

// execute runs one command on a and releases its logger on every path,
// including commands that fail.
func (a *app) execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}
	if cerr := a.close(); cerr != nil {
		fmt.Fprintf(errOut, "Error: %v\n", cerr)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, quadratic.ErrNonNumericCoefficient):
		return exitNonNumeric
	case errors.Is(err, quadratic.ErrDegenerateCoefficient):
		return exitDegenerate
	default:
		return exitFailure
	}
}

// reportedError marks an error that was already rendered to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }
