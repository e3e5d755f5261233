// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

// DefaultPort is the HTTP port used by `quadsolve serve`.
const DefaultPort = 12310

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
	Output    OutputConfig    `yaml:"output"`
}

type ServerConfig struct {
	Port    int    `yaml:"port" validate:"min=1,max=65535"`
	GinMode string `yaml:"gin_mode" validate:"oneof=debug release test"`

	// RateLimit is requests per second across all clients; <= 0 disables it.
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`
	Burst     int     `yaml:"burst" validate:"gte=0"`
}

type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" validate:"required"`
	TraceExporter  string `yaml:"trace_exporter" validate:"oneof=otlp stdout none"`
	MetricExporter string `yaml:"metric_exporter" validate:"oneof=prometheus stdout none"`
	OTLPEndpoint   string `yaml:"otlp_endpoint" validate:"required_if=TraceExporter otlp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	JSON   bool   `yaml:"json"`
	LogDir string `yaml:"log_dir"`
}

type OutputConfig struct {
	Format string `yaml:"format" validate:"oneof=auto text plain json"`

	// Precision is the number of significant digits printed; -1 means the
	// shortest representation that round-trips.
	Precision int `yaml:"precision" validate:"min=-1,max=17"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:      DefaultPort,
			GinMode:   "release",
			RateLimit: 50,
			Burst:     100,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "quadsolve",
			TraceExporter:  "none",
			MetricExporter: "prometheus",
			OTLPEndpoint:   "localhost:4317",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format:    "auto",
			Precision: -1,
		},
	}
}
