// Package config provides configuration loading from YAML files.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvAddr      = "NEGATIVESPACE_ADDR"
	EnvOutput    = "NEGATIVESPACE_OUTPUT"
	EnvAssetsDir = "NEGATIVESPACE_ASSETS_DIR"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Playback PlaybackConfig `yaml:"playback"`
	Output   OutputConfig   `yaml:"output"`
	Catalog  CatalogConfig  `yaml:"catalog"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr  string      `yaml:"addr" default:":8080"`
	Hooks HooksConfig `yaml:"hooks"`
}

// HooksConfig represents lifecycle hooks configuration.
type HooksConfig struct {
	OnStarted []string `yaml:"on_started"`
	OnStopped []string `yaml:"on_stopped"`
}

// PlaybackConfig represents playback control configuration.
type PlaybackConfig struct {
	FadeOutMs   int    `yaml:"fade_out_ms" default:"400" validate:"gte=0,lte=10000"`
	FadeInMs    int    `yaml:"fade_in_ms" default:"600" validate:"gte=0,lte=10000"`
	StepMs      int    `yaml:"step_ms" default:"20" validate:"gte=1,lte=1000"`
	EventBuffer int    `yaml:"event_buffer" default:"1024" validate:"gte=1"`
	Shuffle     string `yaml:"shuffle" default:"pool" validate:"oneof=pool random"`
	Autoplay    bool   `yaml:"autoplay"`
}

// FadeOut returns the fade-out length.
func (p PlaybackConfig) FadeOut() time.Duration {
	return time.Duration(p.FadeOutMs) * time.Millisecond
}

// FadeIn returns the fade-in length.
func (p PlaybackConfig) FadeIn() time.Duration {
	return time.Duration(p.FadeInMs) * time.Millisecond
}

// Step returns the interval between fade steps.
func (p PlaybackConfig) Step() time.Duration {
	return time.Duration(p.StepMs) * time.Millisecond
}

// OutputConfig selects the audio output driver. Settings are decoded by the
// driver itself.
type OutputConfig struct {
	Driver   string         `yaml:"driver" default:"null" validate:"oneof=speaker null"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// CatalogConfig represents the static track list.
type CatalogConfig struct {
	AssetsDir string        `yaml:"assets_dir"`
	Tracks    []TrackConfig `yaml:"tracks" validate:"required,min=1,unique=ID,dive"`
}

// TrackConfig represents a single catalog entry.
type TrackConfig struct {
	ID     int    `yaml:"id" validate:"required,gte=1"`
	Title  string `yaml:"title" validate:"required"`
	Artist string `yaml:"artist"`
	File   string `yaml:"file" validate:"required"`
	Cover  string `yaml:"cover"`
	Desc   string `yaml:"desc"`
}

// ResolvePath resolves ref against the assets directory. URLs and absolute
// paths are returned unchanged.
func (c CatalogConfig) ResolvePath(ref string) string {
	if ref == "" || c.AssetsDir == "" || filepath.IsAbs(ref) {
		return ref
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return ref
	}
	return filepath.Join(c.AssetsDir, ref)
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	return Parse(data)
}

// Parse parses configuration from YAML data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output.Driver = v
	}
	if v := os.Getenv(EnvAssetsDir); v != "" {
		c.Catalog.AssetsDir = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
