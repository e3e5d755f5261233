// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package solver provides the HTTP service behind `quadsolve serve`.
//
// # Architecture
//
//	gin.Engine
//	   │ otelgin ─► RequestID ─► AccessLog ─► Recovery
//	   │
//	   ├── GET  /health
//	   ├── GET  /metrics           (Prometheus registry owned by the service)
//	   └── /v1  RateLimit
//	         ├── POST /v1/solve
//	         └── GET  /v1/solve
//	                   │
//	                   ▼
//	            engine.Solver ─► quadratic.SolveValues
package solver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/AleutianAI/quadsolve/pkg/config"
	"github.com/AleutianAI/quadsolve/pkg/logging"
	"github.com/AleutianAI/quadsolve/services/solver/engine"
	"github.com/AleutianAI/quadsolve/services/solver/middleware"
	"github.com/AleutianAI/quadsolve/services/solver/observability"
	"github.com/AleutianAI/quadsolve/services/solver/routes"
	"github.com/AleutianAI/quadsolve/services/solver/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

// =============================================================================
// Interface Definition
// =============================================================================

// Service is the solver HTTP service lifecycle.
//
// # Thread Safety
//
// Run blocks and must be called at most once. Router is safe to call
// concurrently with Run.
type Service interface {
	// Run serves HTTP until ctx is cancelled or the listener fails, then
	// drains in-flight requests and releases telemetry. A cancelled ctx
	// is a clean exit and returns nil.
	Run(ctx context.Context) error

	// Router returns the configured engine for tests.
	Router() *gin.Engine
}

// =============================================================================
// Implementation
// =============================================================================

type service struct {
	config   config.Config
	logger   *logging.Logger
	router   *gin.Engine
	registry *prometheus.Registry
	solver   engine.Solver

	telemetryShutdown func(context.Context) error
}

// New builds the service: telemetry, metrics, solver and router.
//
// # Inputs
//
//   - cfg: Validated configuration. Server and Telemetry sections are used.
//   - logger: Required.
//
// # Outputs
//
//   - Service: Ready to Run.
//   - error: Configuration or telemetry initialization failure.
//
// # Examples
//
//	svc, err := solver.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return svc.Run(ctx)
func New(cfg config.Config, logger *logging.Logger) (Service, error) {
	if logger == nil {
		return nil, errors.New("solver: nil logger")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &service{
		config:   cfg,
		logger:   logger.With("component", "solver"),
		registry: prometheus.NewRegistry(),
	}
	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tcfg := telemetry.FromConfig(cfg.Telemetry)
	tcfg.Registerer = s.registry
	shutdown, err := telemetry.Init(context.Background(), tcfg)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	s.telemetryShutdown = shutdown

	otelMetrics, err := telemetry.NewMetrics(otel.Meter("quadsolve/solver"))
	if err != nil {
		s.cleanup()
		return nil, fmt.Errorf("create otel metrics: %w", err)
	}

	s.solver = engine.NewSolver(s.logger, observability.NewSolverMetrics(s.registry), otelMetrics)
	s.initRouter()

	return s, nil
}

// =============================================================================
// Service Interface Methods
// =============================================================================

func (s *service) Run(ctx context.Context) error {
	defer s.cleanup()

	addr := net.JoinHostPort("", strconv.Itoa(s.config.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting solver server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down solver server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *service) Router() *gin.Engine {
	return s.router
}

// =============================================================================
// Private Initialization Methods
// =============================================================================

func (s *service) initRouter() {
	gin.SetMode(s.config.Server.GinMode)

	s.router = gin.New()
	s.router.Use(
		otelgin.Middleware(s.config.Telemetry.ServiceName),
		middleware.RequestID(),
		middleware.AccessLog(s.logger),
		gin.Recovery(),
	)

	metrics := promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
	routes.SetupRoutes(s.router, s.solver, metrics,
		middleware.RateLimit(s.config.Server.RateLimit, s.config.Server.Burst))
}

// cleanup flushes and stops telemetry.
func (s *service) cleanup() {
	if s.telemetryShutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.telemetryShutdown(ctx); err != nil {
		s.logger.Warn("telemetry shutdown error", "error", err)
	}
	s.telemetryShutdown = nil
}
