// Package config loads overlay settings from a YAML file, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dd0wney/sdfv-volume/pkg/heatmap"
	"github.com/dd0wney/sdfv-volume/pkg/logging"
	"github.com/dd0wney/sdfv-volume/pkg/overlay"
	"github.com/dd0wney/sdfv-volume/pkg/symbolic"
	"github.com/dd0wney/sdfv-volume/pkg/validation"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings
const (
	EnvStateLOD      = "VOLUME_STATE_LOD"
	EnvNodeLOD       = "VOLUME_NODE_LOD"
	EnvHeatmapMethod = "VOLUME_HEATMAP_METHOD"
	EnvHistBuckets   = "VOLUME_HIST_BUCKETS"
	EnvSymbols       = "VOLUME_SYMBOLS"
	EnvCacheSize     = "VOLUME_CACHE_SIZE"
	EnvLogLevel      = "LOG_LEVEL"
	EnvMetricsAddr   = "METRICS_ADDR"
)

// Config holds every overlay setting
type Config struct {
	LOD      overlay.LOD        `yaml:"lod"`
	Heatmap  heatmap.Config     `yaml:"heatmap"`
	Symbols  map[string]float64 `yaml:"symbols"`
	Resolver ResolverConfig     `yaml:"resolver"`
	Logging  LoggingConfig      `yaml:"logging"`
	Metrics  MetricsConfig      `yaml:"metrics"`
}

// ResolverConfig configures the symbolic resolver
type ResolverConfig struct {
	CacheSize int `yaml:"cache_size" validate:"gte=1,lte=1000000"`
}

// LoggingConfig configures the logger
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
}

// MetricsConfig configures the Prometheus endpoint. An empty Addr
// disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LOD:      overlay.DefaultLOD(),
		Heatmap:  heatmap.DefaultConfig(),
		Symbols:  make(map[string]float64),
		Resolver: ResolverConfig{CacheSize: symbolic.DefaultCacheSize},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads path (optional), then .env, then the environment, and
// validates the result
func Load(path string) (*Config, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if cfg.Symbols == nil {
			cfg.Symbols = make(map[string]float64)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings with any environment variables that are set
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvStateLOD); v != "" {
		f, err := parseFloat(EnvStateLOD, v)
		if err != nil {
			return err
		}
		c.LOD.StateLOD = f
	}
	if v := os.Getenv(EnvNodeLOD); v != "" {
		f, err := parseFloat(EnvNodeLOD, v)
		if err != nil {
			return err
		}
		c.LOD.NodeLOD = f
	}
	if v := os.Getenv(EnvHeatmapMethod); v != "" {
		c.Heatmap.Method = heatmap.Method(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvHistBuckets); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvHistBuckets, v, err)
		}
		c.Heatmap.HistBuckets = n
	}
	if v := os.Getenv(EnvCacheSize); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvCacheSize, v, err)
		}
		c.Resolver.CacheSize = n
	}
	if v := os.Getenv(EnvSymbols); v != "" {
		symbols, err := ParseSymbols(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSymbols, err)
		}
		for name, value := range symbols {
			c.Symbols[name] = value
		}
	}
	c.Logging.Level = getEnvOrDefault(EnvLogLevel, c.Logging.Level)
	c.Metrics.Addr = getEnvOrDefault(EnvMetricsAddr, c.Metrics.Addr)
	return nil
}

// Validate checks struct constraints, symbol names and values, and the
// method-specific heatmap parameters
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	return validation.NewConfigValidator("config").
		Custom("symbols", func() error { return validation.ValidateSymbolValues(c.Symbols) }).
		Finite("lod.state", c.LOD.StateLOD).
		PositiveFloat("lod.state", c.LOD.StateLOD).
		Finite("lod.node", c.LOD.NodeLOD).
		PositiveFloat("lod.node", c.LOD.NodeLOD).
		When(c.Heatmap.Method == heatmap.MethodExponential && c.Heatmap.ExpBase != 0, func(cv *validation.ConfigValidator) {
			cv.GreaterThanFloat("heatmap.exp_base", c.Heatmap.ExpBase, 1)
		}).
		When(c.Heatmap.Method == heatmap.MethodHistogram, func(cv *validation.ConfigValidator) {
			cv.RangeInt("heatmap.hist_buckets", c.Heatmap.HistBuckets, 1, 1000)
		}).
		Validate()
}

// LogLevel returns the configured logging level
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Logging.Level)
}

// SymbolMap returns the configured symbols as a resolver seed
func (c *Config) SymbolMap() symbolic.SymbolMap {
	out := make(symbolic.SymbolMap, len(c.Symbols))
	for k, v := range c.Symbols {
		out[k] = v
	}
	return out
}

// ParseSymbols parses "N=3,M=4" into a map
func ParseSymbols(s string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, pair := range splitAndTrim(s, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("expected name=value, got %q", pair)
		}
		name = strings.TrimSpace(name)
		if err := validation.ValidateSymbolName(name); err != nil {
			return nil, err
		}
		f, err := parseFloat(name, value)
		if err != nil {
			return nil, err
		}
		out[name] = f
	}
	return out, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseFloat(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s %q: %w", name, s, err)
	}
	return f, nil
}

// splitAndTrim splits s and drops empty parts
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
