// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file specified by path. If path
// is empty, it searches default locations ("config.yaml"). If no file is
// found, it uses built-in defaults. After loading defaults or from file, it
// applies environment variable overrides and validates the final
// configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		candidates := []string{
			"config.yaml",
			"/etc/spectrum-api/config.yaml",
		}
		for _, candidate := range candidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides AFTER loading from file.
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values no component can run with.
func (c *Config) Validate() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("server.port %d out of range [%d, %d]", c.Server.Port, MinPort, MaxPort)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if c.Auth.HeaderName == "" {
		return fmt.Errorf("auth.header_name must not be empty")
	}
	if c.Spectrum.MaxCacheEntries <= 0 {
		return fmt.Errorf("spectrum.max_cache_entries must be positive")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv(EnvAPIKeyHeader); ok && val != "" {
		c.Auth.HeaderName = val
	}
	if val, ok := os.LookupEnv(EnvAPIKeyValue); ok {
		c.Auth.Key = val
	}
	if val, ok := os.LookupEnv(EnvPort); ok {
		if port, err := strconv.Atoi(val); err == nil {
			c.Server.Port = port
		}
	}
	if val, ok := os.LookupEnv(EnvLogLevel); ok && val != "" {
		c.LogLevel = val
	}
}
