// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package engine runs quadratic solves with tracing, metrics and logging
// attached. Every entry point (HTTP handlers, CLI) goes through it.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/AleutianAI/quadsolve/pkg/logging"
	"github.com/AleutianAI/quadsolve/pkg/quadratic"
	"github.com/AleutianAI/quadsolve/services/solver/observability"
	"github.com/AleutianAI/quadsolve/services/solver/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "quadsolve/solver"

// Result is the outcome of one instrumented solve.
type Result struct {
	// Coefficients are the numeric coefficients. Zero when conversion failed.
	Coefficients quadratic.Coefficients

	// Roots holds 0, 1 or 2 roots; nil on error.
	Roots quadratic.Roots

	// Discriminant is b² - 4ac; zero on error.
	Discriminant float64

	// Outcome is the metric label for this solve.
	Outcome observability.Outcome
}

// Solver solves quadratics with tracing, metrics and logging attached.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use.
type Solver interface {
	// Solve converts a, b, c and solves a·x² + b·x + c = 0.
	//
	// Errors are the ones quadratic.SolveValues returns and match
	// quadratic.ErrNonNumericCoefficient or quadratic.ErrDegenerateCoefficient
	// via errors.Is. Result.Outcome is set on both paths.
	Solve(ctx context.Context, a, b, c any) (Result, error)

	// Reject records err as a rejected solve without running one. Callers
	// that parse coefficients themselves use it so the failure is counted,
	// traced and logged with the coefficient that actually failed. err
	// must be non-nil.
	Reject(ctx context.Context, err error) Result
}

type endpointKey struct{}

// WithEndpoint tags ctx with the entry point used as the metric label.
func WithEndpoint(ctx context.Context, endpoint observability.Endpoint) context.Context {
	return context.WithValue(ctx, endpointKey{}, endpoint)
}

func endpointFrom(ctx context.Context) observability.Endpoint {
	if e, ok := ctx.Value(endpointKey{}).(observability.Endpoint); ok {
		return e
	}
	return observability.EndpointCLI
}

type instrumentedSolver struct {
	logger  *logging.Logger
	metrics *observability.SolverMetrics
	otel    *telemetry.Metrics
}

// NewSolver returns a Solver that records to the given sinks.
//
// # Inputs
//
//   - logger: Required.
//   - metrics: Prometheus collectors. May be nil.
//   - otelMetrics: OTel instruments. May be nil.
func NewSolver(logger *logging.Logger, metrics *observability.SolverMetrics, otelMetrics *telemetry.Metrics) Solver {
	return &instrumentedSolver{
		logger:  logger,
		metrics: metrics,
		otel:    otelMetrics,
	}
}

func (s *instrumentedSolver) Solve(ctx context.Context, a, b, c any) (Result, error) {
	return s.observe(ctx, func() (Result, error) {
		return solve(a, b, c)
	})
}

func (s *instrumentedSolver) Reject(ctx context.Context, err error) Result {
	result, _ := s.observe(ctx, func() (Result, error) {
		return Result{Outcome: outcomeFor(err)}, err
	})
	return result
}

// observe runs fn inside the quadratic.solve span and records its outcome
// to every sink.
func (s *instrumentedSolver) observe(ctx context.Context, fn func() (Result, error)) (Result, error) {
	endpoint := endpointFrom(ctx)
	ctx, span := telemetry.StartSpan(ctx, tracerName, "quadratic.solve",
		trace.WithAttributes(attribute.String("endpoint", string(endpoint))))
	defer span.End()

	start := time.Now()
	result, err := fn()
	elapsed := time.Since(start).Seconds()

	s.record(ctx, endpoint, result, elapsed)

	logArgs := append(telemetry.TraceAttrs(ctx), "endpoint", string(endpoint), "outcome", string(result.Outcome))
	if err != nil {
		telemetry.RecordError(span, err, attribute.String("outcome", string(result.Outcome)))
		s.logger.WarnContext(ctx, "solve rejected", append(logArgs, "error", err)...)
		return result, err
	}

	span.SetAttributes(
		attribute.Int("roots", len(result.Roots)),
		attribute.Float64("discriminant", result.Discriminant),
	)
	telemetry.SetSpanOK(span)
	s.logger.DebugContext(ctx, "solved", append(logArgs, "roots", len(result.Roots))...)
	return result, nil
}

func (s *instrumentedSolver) record(ctx context.Context, endpoint observability.Endpoint, result Result, seconds float64) {
	if s.metrics != nil {
		s.metrics.RecordSolve(endpoint, result.Outcome, len(result.Roots), seconds)
	}
	if s.otel != nil {
		s.otel.Record(ctx, string(endpoint), string(result.Outcome), seconds)
	}
}

// solve is the uninstrumented core shared by every entry point.
func solve(a, b, c any) (Result, error) {
	coeffs, err := quadratic.CoefficientsOf(a, b, c)
	if err != nil {
		return Result{Outcome: outcomeFor(err)}, err
	}

	roots, err := coeffs.Solve()
	if err != nil {
		return Result{Coefficients: coeffs, Outcome: outcomeFor(err)}, err
	}

	return Result{
		Coefficients: coeffs,
		Roots:        roots,
		Discriminant: coeffs.Discriminant(),
		Outcome:      observability.OutcomeForRoots(len(roots)),
	}, nil
}

func outcomeFor(err error) observability.Outcome {
	switch {
	case errors.Is(err, quadratic.ErrNonNumericCoefficient):
		return observability.OutcomeNonNumeric
	case errors.Is(err, quadratic.ErrDegenerateCoefficient):
		return observability.OutcomeDegenerate
	default:
		return observability.OutcomeError
	}
}
