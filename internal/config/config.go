package config

import "time"

// Core configuration constants that define the boundaries and defaults
// for the spectrum analysis service.
const (
	// Default values for the service configuration
	DefaultHost     = "0.0.0.0" // Listen on all interfaces
	DefaultPort     = 8080      // HTTP listen port
	DefaultLogLevel = "info"    // Quiet operation
	DefaultConfig   = ""        // No config file by default

	// Authentication defaults; the key itself has no default and must be
	// provided via config file or environment before the server will start.
	DefaultAPIKeyHeader = "X-API-Key"

	// Server timeouts
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxCacheEntries mirrors the analyzer's plan cache bound; kept
	// here so a config file can widen or narrow it.
	DefaultMaxCacheEntries = 200

	// Network limits
	MinPort = 1
	MaxPort = 65535

	// Environment variable names for API key configuration, kept stable for
	// deployments that inject credentials through the environment.
	EnvAPIKeyHeader = "API_KEY_NAME"
	EnvAPIKeyValue  = "API_KEY_VALUE"
	EnvPort         = "SPECTRUM_PORT"
	EnvLogLevel     = "SPECTRUM_LOG_LEVEL"
)

// Config holds all runtime configuration options for the service. It is
// constructed from defaults, an optional YAML file, command line flags and
// environment overrides, in that order.
type Config struct {
	Debug    bool   `yaml:"debug"`     // Enable debug mode (verbose logging)
	LogLevel string `yaml:"log_level"` // Logging level (e.g., "debug", "info", "warn", "error")

	Server   ServerConfig   `yaml:"server"`   // HTTP server settings
	Auth     AuthConfig     `yaml:"auth"`     // API key authentication settings
	Spectrum SpectrumConfig `yaml:"spectrum"` // Analyzer settings

	// One-off command to execute instead of serving (e.g., "wav", "version").
	Command string `yaml:"-"`
	// Arguments for the one-off command (e.g., WAV file paths).
	CommandArgs []string `yaml:"-"`
}

// ServerConfig holds settings for the HTTP boundary.
type ServerConfig struct {
	Host            string   `yaml:"host"`             // Listen address
	Port            int      `yaml:"port"`             // Listen port
	ReadTimeout     Duration `yaml:"read_timeout"`     // Max time to read a request
	WriteTimeout    Duration `yaml:"write_timeout"`    // Max time to write a response
	ShutdownTimeout Duration `yaml:"shutdown_timeout"` // Grace period on shutdown
}

// AuthConfig holds API key authentication settings.
type AuthConfig struct {
	HeaderName string `yaml:"header_name"` // Request header carrying the key
	Key        string `yaml:"key"`         // Expected key value
}

// SpectrumConfig holds analyzer settings.
type SpectrumConfig struct {
	MaxCacheEntries int `yaml:"max_cache_entries"` // Distinct signal lengths cached before a full clear
}

// NewConfig creates a Config with default values. This is the base
// configuration before a config file, flags or environment overrides apply.
func NewConfig() *Config {
	return &Config{
		Debug:    false,
		LogLevel: DefaultLogLevel,
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     Duration(DefaultReadTimeout),
			WriteTimeout:    Duration(DefaultWriteTimeout),
			ShutdownTimeout: Duration(DefaultShutdownTimeout),
		},
		Auth: AuthConfig{
			HeaderName: DefaultAPIKeyHeader,
		},
		Spectrum: SpectrumConfig{
			MaxCacheEntries: DefaultMaxCacheEntries,
		},
	}
}
