package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Search  SearchConfig  `yaml:"search"`
	MCP     MCPConfig     `yaml:"mcp"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// HTTPConfig governs the HTTP API server.
type HTTPConfig struct {
	Addr               string        `yaml:"addr"`
	ReadTimeout        time.Duration `yaml:"read_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins     []string      `yaml:"allowed_origins"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int           `yaml:"rate_limit_burst"`
	UIDir              string        `yaml:"ui_dir"`
}

// SearchConfig holds request limits and heuristic generation settings.
type SearchConfig struct {
	MaxNodes          int    `yaml:"max_nodes"`
	MaxEdges          int    `yaml:"max_edges"`
	DefaultAlgorithm  string `yaml:"default_algorithm"`
	HeuristicProvider string `yaml:"heuristic_provider"`
	HeuristicSeed     uint64 `yaml:"heuristic_seed"`
	StreamBuffer      int    `yaml:"stream_buffer"`
}

// MCPConfig selects the MCP transport.
type MCPConfig struct {
	Transport   string `yaml:"transport"` // stdio|sse
	Addr        string `yaml:"addr"`
	SSEEndpoint string `yaml:"sse_endpoint"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"` // text|json
	IncludeCaller bool   `yaml:"include_caller"`
}

// MetricsConfig toggles the Prometheus recorder. Addr starts a side server
// for the MCP transports; the HTTP API always mounts /metrics itself.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

const (
	defaultHTTPAddr           = ":8080"
	defaultReadTimeout        = 10 * time.Second
	defaultWriteTimeout       = 30 * time.Second
	defaultIdleTimeout        = 60 * time.Second
	defaultShutdownTimeout    = 10 * time.Second
	defaultRateLimitPerMinute = 30
	defaultMaxNodes           = 20
	defaultMaxEdges           = 50
	defaultAlgorithm          = "bfs"
	defaultHeuristicProvider  = "random"
	defaultStreamBuffer       = 16
	defaultMCPTransport       = "stdio"
	defaultMCPAddr            = ":8081"
	defaultSSEEndpoint        = "/sse"
	defaultLoggingLevel       = "info"
	defaultLoggingFormat      = "text"

	envPrefix = "PATHSEARCH_"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:               defaultHTTPAddr,
			ReadTimeout:        defaultReadTimeout,
			WriteTimeout:       defaultWriteTimeout,
			IdleTimeout:        defaultIdleTimeout,
			ShutdownTimeout:    defaultShutdownTimeout,
			RateLimitPerMinute: defaultRateLimitPerMinute,
			RateLimitBurst:     defaultRateLimitPerMinute,
		},
		Search: SearchConfig{
			MaxNodes:          defaultMaxNodes,
			MaxEdges:          defaultMaxEdges,
			DefaultAlgorithm:  defaultAlgorithm,
			HeuristicProvider: defaultHeuristicProvider,
			StreamBuffer:      defaultStreamBuffer,
		},
		MCP: MCPConfig{
			Transport:   defaultMCPTransport,
			Addr:        defaultMCPAddr,
			SSEEndpoint: defaultSSEEndpoint,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (or
// PATHSEARCH_CONFIG when path is empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.HTTP.Addr = valueOrDefault("HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.UIDir = valueOrDefault("UI_DIR", cfg.HTTP.UIDir)
	cfg.HTTP.RateLimitPerMinute = parseIntWithDefault("RATE_LIMIT_PER_MINUTE", cfg.HTTP.RateLimitPerMinute)
	cfg.HTTP.RateLimitBurst = parseIntWithDefault("RATE_LIMIT_BURST", cfg.HTTP.RateLimitBurst)
	if v := os.Getenv(envPrefix + "ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitCSV(v)
	}
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
	}
	for _, d := range durations {
		if v := os.Getenv(envPrefix + d.key); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", envPrefix, d.key, err)
			}
			*d.dst = parsed
		}
	}

	cfg.Search.MaxNodes = parseIntWithDefault("MAX_NODES", cfg.Search.MaxNodes)
	cfg.Search.MaxEdges = parseIntWithDefault("MAX_EDGES", cfg.Search.MaxEdges)
	cfg.Search.DefaultAlgorithm = valueOrDefault("DEFAULT_ALGORITHM", cfg.Search.DefaultAlgorithm)
	cfg.Search.HeuristicProvider = valueOrDefault("HEURISTIC_PROVIDER", cfg.Search.HeuristicProvider)
	cfg.Search.StreamBuffer = parseIntWithDefault("STREAM_BUFFER", cfg.Search.StreamBuffer)
	if v := os.Getenv(envPrefix + "HEURISTIC_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sHEURISTIC_SEED: %w", envPrefix, err)
		}
		cfg.Search.HeuristicSeed = seed
	}

	cfg.MCP.Transport = valueOrDefault("MCP_TRANSPORT", cfg.MCP.Transport)
	cfg.MCP.Addr = valueOrDefault("MCP_ADDR", cfg.MCP.Addr)
	cfg.MCP.SSEEndpoint = valueOrDefault("MCP_SSE_ENDPOINT", cfg.MCP.SSEEndpoint)

	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)

	cfg.Metrics.Enabled = parseBoolWithDefault("METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.Addr = valueOrDefault("METRICS_ADDR", cfg.Metrics.Addr)
	return nil
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	switch strings.ToLower(c.MCP.Transport) {
	case "stdio", "sse":
	default:
		return fmt.Errorf("unsupported mcp transport %q", c.MCP.Transport)
	}
	if c.Search.MaxNodes <= 0 || c.Search.MaxEdges <= 0 {
		return fmt.Errorf("search limits must be positive (nodes=%d edges=%d)", c.Search.MaxNodes, c.Search.MaxEdges)
	}
	if c.HTTP.RateLimitPerMinute < 0 {
		return fmt.Errorf("rate limit must not be negative: %d", c.HTTP.RateLimitPerMinute)
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(envPrefix + key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(envPrefix + key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
