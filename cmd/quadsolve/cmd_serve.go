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
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AleutianAI/quadsolve/pkg/config"
	"github.com/AleutianAI/quadsolve/pkg/logging"
	"github.com/AleutianAI/quadsolve/services/solver"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the solver HTTP service",
		Long: `serve exposes POST/GET /v1/solve, /health and /metrics. SIGINT or
SIGTERM drain in-flight requests before exiting. When a config file is in
use, edits to its logging level take effect without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, err := solver.New(a.cfg, a.logger)
			if err != nil {
				return err
			}

			if a.configPath != "" {
				go a.watchConfig(ctx)
			}

			return svc.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", config.DefaultPort, "HTTP port, overrides server.port")
	return cmd
}

// watchConfig applies logging level changes from the config file until
// ctx is done.
func (a *app) watchConfig(ctx context.Context) {
	err := config.Watch(ctx, a.configPath,
		func(cfg config.Config) { a.applyReload(cfg) },
		func(err error) { a.logger.Warn("config reload rejected", "path", a.configPath, "error", err) },
	)
	if err != nil && ctx.Err() == nil {
		a.logger.Warn("config watch stopped", "path", a.configPath, "error", err)
	}
}

func (a *app) applyReload(cfg config.Config) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		a.logger.Warn("config reload rejected", "error", err)
		return
	}
	if level != a.logger.Level() {
		a.logger.SetLevel(level)
		a.logger.Info("log level changed", "level", level.String())
	}
}
