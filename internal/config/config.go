// Package config loads the optional YAML configuration of the hosting
// server. The stitching core reads no configuration of its own; everything
// here is translated into explicit options at startup.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/tile-stitch-mcp/internal/pipeline"
	"github.com/ironsheep/tile-stitch-mcp/internal/tiles"
)

// Config represents a tile-stitch.yaml file. All values are optional.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	InvalidTile InvalidTileConfig `yaml:"invalid_tile"`
	Limits      LimitsConfig      `yaml:"limits"`
	Log         LogConfig         `yaml:"log"`
}

// HTTPConfig tunes tile downloads.
type HTTPConfig struct {
	// Timeout bounds each tile download. Unset means no timeout.
	Timeout Duration `yaml:"timeout"`
	// MaxConcurrent caps downloads in flight. Unset means one per tile.
	MaxConcurrent int `yaml:"max_concurrent"`
}

// InvalidTileConfig overrides the placeholder detection policy one field at
// a time. An unset field keeps the default; an explicit 0 disables that check.
type InvalidTileConfig struct {
	ByteLength *int `yaml:"byte_length"`
	Edge       *int `yaml:"edge"`
}

// IsSet reports whether any field was configured.
func (c InvalidTileConfig) IsSet() bool {
	return c.ByteLength != nil || c.Edge != nil
}

// Policy merges the configured fields over tiles.DefaultInvalidTilePolicy.
func (c InvalidTileConfig) Policy() tiles.InvalidTilePolicy {
	p := tiles.DefaultInvalidTilePolicy()
	if c.ByteLength != nil {
		p.ByteLength = *c.ByteLength
	}
	if c.Edge != nil {
		p.Edge = *c.Edge
	}
	return p
}

// LimitsConfig bounds the size of produced images.
type LimitsConfig struct {
	// MaxPixels caps the composite and scaled output. Unset means
	// imaging.DefaultMaxPixels.
	MaxPixels int `yaml:"max_pixels"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "1m30s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Load reads a YAML config file, expands environment variables, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data after expanding ${VAR} references.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values that cannot be turned into fetcher options.
func (c *Config) Validate() error {
	if c.HTTP.Timeout.Duration < 0 {
		return fmt.Errorf("http.timeout must not be negative")
	}
	if c.HTTP.MaxConcurrent < 0 {
		return fmt.Errorf("http.max_concurrent must not be negative, got %d", c.HTTP.MaxConcurrent)
	}
	if p := c.InvalidTile.Policy(); p.ByteLength < 0 || p.Edge < 0 {
		return fmt.Errorf("invalid_tile values must not be negative")
	}
	if c.Limits.MaxPixels < 0 {
		return fmt.Errorf("limits.max_pixels must not be negative, got %d", c.Limits.MaxPixels)
	}
	return nil
}

// FetcherOptions translates the config into tile fetcher options.
func (c *Config) FetcherOptions() []tiles.Option {
	var opts []tiles.Option
	if c.HTTP.Timeout.Duration > 0 {
		opts = append(opts, tiles.WithTimeout(c.HTTP.Timeout.Duration))
	}
	if c.HTTP.MaxConcurrent > 0 {
		opts = append(opts, tiles.WithConcurrency(c.HTTP.MaxConcurrent))
	}
	if c.InvalidTile.IsSet() {
		opts = append(opts, tiles.WithInvalidTilePolicy(c.InvalidTile.Policy()))
	}
	return opts
}

// PipelineOptions translates the config into pipeline options.
func (c *Config) PipelineOptions() []pipeline.Option {
	var opts []pipeline.Option
	if c.Limits.MaxPixels > 0 {
		opts = append(opts, pipeline.WithMaxPixels(c.Limits.MaxPixels))
	}
	return opts
}
