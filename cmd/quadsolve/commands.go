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
	"fmt"
	"os"

	"github.com/AleutianAI/quadsolve/pkg/config"
	"github.com/AleutianAI/quadsolve/pkg/logging"
	"github.com/AleutianAI/quadsolve/pkg/ux"
	"github.com/AleutianAI/quadsolve/services/solver/engine"
	"github.com/spf13/cobra"
)

// envConfigPath names a config file when --config is not given.
const envConfigPath = "QUADSOLVE_CONFIG"

// app holds flag values and the state built in PersistentPreRunE.
type app struct {
	// --- Global flags ---
	configPath string
	logLevel   string
	output     string
	precision  int
	verbose    bool

	// --- Built before each command ---
	cfg    config.Config
	logger *logging.Logger
	solver engine.Solver
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "quadsolve",
		Short: "Find the real roots of a·x² + b·x + c = 0",
		Long: `quadsolve solves quadratic equations with real coefficients using a
numerically stable formula. Use it directly, interactively, or run it as
an HTTP service.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file (env "+envConfigPath+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVarP(&a.output, "output", "o", "", "output format: auto, text, plain, json")
	flags.IntVarP(&a.precision, "precision", "p", -1, "significant digits, -1 for shortest round-trip")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "also print the discriminant")

	root.AddCommand(
		newSolveCmd(a),
		newPromptCmd(a),
		newReplCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger
// and solver shared by every subcommand.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		path = os.Getenv(envConfigPath)
		a.configPath = path
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("output") {
		cfg.Output.Format = a.output
	}
	if flags.Changed("precision") {
		cfg.Output.Precision = a.precision
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// One-shot commands print results on stdout and errors through ux, so
	// console logging is off unless asked for. serve always logs.
	quiet := cmd.Name() != "serve" && !flags.Changed("log-level")

	a.logger = logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Logging.LogDir,
		Service: cfg.Telemetry.ServiceName,
		JSON:    cfg.Logging.JSON,
		Quiet:   quiet,
		Output:  cmd.ErrOrStderr(),
	})
	a.solver = engine.NewSolver(a.logger, nil, nil)
	return nil
}

// close releases the logger built by setup. Safe to call when setup never
// ran.
func (a *app) close() error {
	if a.logger == nil {
		return nil
	}
	err := a.logger.Close()
	a.logger = nil
	return err
}

func (a *app) renderOptions() ux.Options {
	return ux.Options{
		Format:    a.cfg.Output.Format,
		Precision: a.cfg.Output.Precision,
		Verbose:   a.verbose,
	}
}

// reportError renders err for the user and marks it reported. JSON goes
// to stdout so scripts can parse both outcomes from one stream.
func (a *app) reportError(cmd *cobra.Command, err error) error {
	opts := a.renderOptions()
	w := cmd.ErrOrStderr()
	if ux.ResolveFormat(opts.Format, w) == ux.FormatJSON {
		w = cmd.OutOrStdout()
	}
	if rerr := ux.RenderError(w, err, opts); rerr != nil {
		return rerr
	}
	return &reportedError{err: err}
}
