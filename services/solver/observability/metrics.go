// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the solver service.
//
// # Description
//
// Metrics include:
//   - Solve counters by endpoint and outcome
//   - Number of roots returned per successful solve
//   - Solve latency histogram
//
// # Integration
//
// Metrics are exposed via the /metrics endpoint of `quadsolve serve`.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Metric Definitions
// =============================================================================

// Namespace for all metrics
const metricsNamespace = "quadsolve"

// Subsystem for solver metrics
const solverSubsystem = "solver"

// SolverMetrics holds the Prometheus collectors for solve operations.
//
// # Fields
//
//   - SolvesTotal: Counter of solves by endpoint and outcome
//   - RootsReturned: Histogram of root counts (0, 1, 2) on success
//   - SolveDurationSeconds: Histogram of solve latency
//
// # Thread Safety
//
// All operations are thread-safe.
type SolverMetrics struct {
	// SolvesTotal counts solves.
	// Labels: endpoint (http_post, http_get, cli), outcome (see Outcome)
	SolvesTotal *prometheus.CounterVec

	// RootsReturned observes len(roots) for successful solves.
	RootsReturned prometheus.Histogram

	// SolveDurationSeconds measures time spent inside the solver.
	// Labels: endpoint
	SolveDurationSeconds *prometheus.HistogramVec
}

// NewSolverMetrics creates the collectors and registers them on reg.
//
// # Inputs
//
//   - reg: Registry to register on. prometheus.DefaultRegisterer in
//     production, prometheus.NewRegistry() in tests.
//
// # Limitations
//
//   - Panics if the same registry is used twice (duplicate registration).
func NewSolverMetrics(reg prometheus.Registerer) *SolverMetrics {
	factory := promauto.With(reg)

	return &SolverMetrics{
		SolvesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "solves_total",
				Help:      "Total number of solve calls by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		RootsReturned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "roots_returned",
				Help:      "Number of real roots returned by successful solves",
				Buckets:   []float64{0, 1, 2},
			},
		),

		SolveDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: solverSubsystem,
				Name:      "solve_duration_seconds",
				Help:      "Time spent solving in seconds",
				Buckets:   []float64{1e-7, 1e-6, 1e-5, 1e-4, 1e-3, 1e-2},
			},
			[]string{"endpoint"},
		),
	}
}

// =============================================================================
// Outcomes
// =============================================================================

// Outcome categorizes the result of one solve for labeling.
type Outcome string

const (
	OutcomeTwoRoots   Outcome = "two_roots"
	OutcomeOneRoot    Outcome = "one_root"
	OutcomeNoRoots    Outcome = "no_roots"
	OutcomeNonNumeric Outcome = "non_numeric"
	OutcomeDegenerate Outcome = "degenerate"
	OutcomeError      Outcome = "error"
)

// OutcomeForRoots maps a successful root count to an Outcome.
func OutcomeForRoots(n int) Outcome {
	switch n {
	case 0:
		return OutcomeNoRoots
	case 1:
		return OutcomeOneRoot
	default:
		return OutcomeTwoRoots
	}
}

// =============================================================================
// Endpoint Names
// =============================================================================

// Endpoint names the entry point that triggered a solve.
type Endpoint string

const (
	EndpointHTTPPost Endpoint = "http_post"
	EndpointHTTPGet  Endpoint = "http_get"
	EndpointCLI      Endpoint = "cli"
)

// =============================================================================
// Helper Methods
// =============================================================================

// RecordSolve records one completed solve.
//
// # Inputs
//
//   - endpoint: Entry point that handled the call.
//   - outcome: Result category.
//   - roots: Root count, observed only for successful outcomes.
//   - seconds: Time spent in the solver.
func (m *SolverMetrics) RecordSolve(endpoint Endpoint, outcome Outcome, roots int, seconds float64) {
	m.SolvesTotal.WithLabelValues(string(endpoint), string(outcome)).Inc()
	m.SolveDurationSeconds.WithLabelValues(string(endpoint)).Observe(seconds)

	switch outcome {
	case OutcomeTwoRoots, OutcomeOneRoot, OutcomeNoRoots:
		m.RootsReturned.Observe(float64(roots))
	}
}
