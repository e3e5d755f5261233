// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/AleutianAI/quadsolve/pkg/logging"
	"github.com/AleutianAI/quadsolve/pkg/quadratic"
	"github.com/AleutianAI/quadsolve/pkg/validation"
	"github.com/AleutianAI/quadsolve/services/solver/observability"
	"github.com/AleutianAI/quadsolve/services/solver/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type fixture struct {
	solver   Solver
	metrics  *observability.SolverMetrics
	reader   *sdkmetric.ManualReader
	recorder *tracetest.SpanRecorder
	logs     *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	otelMetrics, err := telemetry.NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	logger := logging.New(logging.Config{Level: logging.LevelDebug, JSON: true, Output: logs})

	metrics := observability.NewSolverMetrics(prometheus.NewRegistry())

	return &fixture{
		solver:   NewSolver(logger, metrics, otelMetrics),
		metrics:  metrics,
		reader:   reader,
		recorder: recorder,
		logs:     logs,
	}
}

func TestSolve_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c any
		outcome observability.Outcome
		roots   int
		wantErr error
	}{
		{"two roots", 1, -3, 2, observability.OutcomeTwoRoots, 2, nil},
		{"one root", 1, 2, 1, observability.OutcomeOneRoot, 1, nil},
		{"no roots", 1, 0, 1, observability.OutcomeNoRoots, 0, nil},
		{"non numeric", 1, "2", 1, observability.OutcomeNonNumeric, 0, quadratic.ErrNonNumericCoefficient},
		{"degenerate", 0, 2, 1, observability.OutcomeDegenerate, 0, quadratic.ErrDegenerateCoefficient},
		{"non numeric wins", 0, nil, 1, observability.OutcomeNonNumeric, 0, quadratic.ErrNonNumericCoefficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			res, err := f.solver.Solve(context.Background(), tt.a, tt.b, tt.c)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res.Roots)
			} else {
				require.NoError(t, err)
				assert.Len(t, res.Roots, tt.roots)
			}
			assert.Equal(t, tt.outcome, res.Outcome)
		})
	}
}

func TestSolve_ResultCarriesDiscriminant(t *testing.T) {
	f := newFixture(t)

	res, err := f.solver.Solve(context.Background(), 1.0, -3.0, 2.0)

	require.NoError(t, err)
	assert.Equal(t, quadratic.Roots{2, 1}, res.Roots)
	assert.Equal(t, 1.0, res.Discriminant)
	assert.Equal(t, quadratic.Coefficients{A: 1, B: -3, C: 2}, res.Coefficients)
}

func TestSolve_RecordsPrometheusByEndpoint(t *testing.T) {
	f := newFixture(t)
	ctx := WithEndpoint(context.Background(), observability.EndpointHTTPPost)

	_, _ = f.solver.Solve(ctx, 1, -3, 2)
	_, _ = f.solver.Solve(ctx, 0, 1, 1)
	_, _ = f.solver.Solve(context.Background(), 1, 2, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SolvesTotal.WithLabelValues("http_post", "two_roots")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SolvesTotal.WithLabelValues("http_post", "degenerate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SolvesTotal.WithLabelValues("cli", "one_root")),
		"untagged context defaults to the cli endpoint")
}

func TestSolve_RecordsOTelCounter(t *testing.T) {
	f := newFixture(t)

	_, _ = f.solver.Solve(context.Background(), 1, -3, 2)
	_, _ = f.solver.Solve(context.Background(), "x", 1, 1)

	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if sum, ok := md.Data.(metricdata.Sum[int64]); ok && md.Name == "quadsolve.solves" {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(2), total)
}

func TestSolve_Span(t *testing.T) {
	f := newFixture(t)

	_, _ = f.solver.Solve(context.Background(), 1, -3, 2)
	_, _ = f.solver.Solve(context.Background(), 0, 1, 1)

	spans := f.recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "quadratic.solve", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestSolve_Logging(t *testing.T) {
	f := newFixture(t)

	_, _ = f.solver.Solve(context.Background(), 1, -3, 2)
	_, _ = f.solver.Solve(context.Background(), 0, 1, 1)

	out := f.logs.String()
	assert.Contains(t, out, `"level":"DEBUG","msg":"solved"`)
	assert.Contains(t, out, `"level":"WARN","msg":"solve rejected"`)
	assert.Contains(t, out, `"outcome":"degenerate"`)
	assert.Contains(t, out, `"trace_id"`)
}

func TestReject_RecordsFailingCoefficient(t *testing.T) {
	f := newFixture(t)
	_, parseErr := validation.ParseCoefficients("1", "abc", "1")
	require.Error(t, parseErr)

	ctx := WithEndpoint(context.Background(), observability.EndpointHTTPGet)
	res := f.solver.Reject(ctx, parseErr)

	assert.Equal(t, observability.OutcomeNonNumeric, res.Outcome)
	assert.Nil(t, res.Roots)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SolvesTotal.WithLabelValues("http_get", "non_numeric")))

	spans := f.recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Status().Description, `b="abc"`)
	assert.NotContains(t, spans[0].Status().Description, "a=")

	out := f.logs.String()
	assert.Contains(t, out, `"msg":"solve rejected"`)
	assert.Contains(t, out, `b=\"abc\"`)
}

func TestSolve_NilSinks(t *testing.T) {
	logger := logging.New(logging.Config{Quiet: true})
	s := NewSolver(logger, nil, nil)

	res, err := s.Solve(context.Background(), 1, -3, 2)

	require.NoError(t, err)
	assert.Len(t, res.Roots, 2)
}

func TestSolve_Concurrent(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.solver.Solve(context.Background(), 1, -3, 2)
		}()
	}
	wg.Wait()

	assert.Equal(t, 32.0, testutil.ToFloat64(f.metrics.SolvesTotal.WithLabelValues("cli", "two_roots")))
}
