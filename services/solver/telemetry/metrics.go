// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics contains the OTel instruments recorded for each solve.
//
// Description:
//
//	These mirror the Prometheus collectors in the observability package
//	but flow through whichever metric exporter is configured, so a stdout
//	or OTLP pipeline sees solves too.
//
// Thread Safety: Safe for concurrent use after creation.
type Metrics struct {
	// Solves counts solves by endpoint and outcome.
	Solves metric.Int64Counter

	// SolveDuration records time spent solving in seconds.
	SolveDuration metric.Float64Histogram
}

// NewMetrics creates the instruments on meter.
//
// Inputs:
//
//	meter - The OTel meter, typically otel.Meter("quadsolve/solver").
//
// Outputs:
//
//	*Metrics - Instruments ready for use.
//	error - Non-nil if instrument creation fails.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.Solves, err = meter.Int64Counter(
		"quadsolve.solves",
		metric.WithDescription("Total solve calls"),
		metric.WithUnit("{solve}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create quadsolve.solves: %w", err)
	}

	m.SolveDuration, err = meter.Float64Histogram(
		"quadsolve.solve.duration",
		metric.WithDescription("Solve duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(1e-7, 1e-6, 1e-5, 1e-4, 1e-3, 1e-2),
	)
	if err != nil {
		return nil, fmt.Errorf("create quadsolve.solve.duration: %w", err)
	}

	return m, nil
}

// Record adds one solve with the given labels.
func (m *Metrics) Record(ctx context.Context, endpoint, outcome string, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("outcome", outcome),
	)
	m.Solves.Add(ctx, 1, attrs)
	m.SolveDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("endpoint", endpoint)))
}
