// Package config loads featureview settings from a TOML file.
//
// Every field has a default, so an absent file is valid. Unknown keys are
// rejected to catch typos early.
//
//	[canvas]
//	width = 1200
//	height = 900
//	margin = 80
//	legend_width = 270
//
//	[render]
//	workers = 1
//	font = ""
//
//	[output]
//	dir = "outputs/previews"
//
//	[cache]
//	backend = "file"   # file | redis | none
//	dir = ""           # defaults to $XDG_CACHE_HOME/featureview
//	ttl = "168h"
//	redis_addr = ""
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/featureview/pkg/errors"
	"github.com/matzehuels/featureview/pkg/render"
)

// AppName names the config and cache directories.
const AppName = "featureview"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Defaults.
const (
	DefaultOutputDir = "outputs/previews"
	DefaultWorkers   = 1
	DefaultTTL       = "168h"
)

// Config is the full settings tree.
type Config struct {
	Canvas render.Config `toml:"canvas"`
	Render RenderConfig  `toml:"render"`
	Output OutputConfig  `toml:"output"`
	Cache  CacheConfig   `toml:"cache"`
}

// RenderConfig tunes rendering.
type RenderConfig struct {
	// Workers is the number of views rendered in parallel.
	Workers int `toml:"workers"`
	// Font is an optional TTF tried before system fonts.
	Font string `toml:"font"`
}

// OutputConfig controls where images go.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	TTL       string `toml:"ttl"`
	RedisAddr string `toml:"redis_addr"`
}

// TTLDuration parses TTL. An empty TTL means entries never expire.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.ttl %q", c.TTL)
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl %q must not be negative", c.TTL)
	}
	return d, nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Canvas: render.DefaultConfig(),
		Render: RenderConfig{Workers: DefaultWorkers},
		Output: OutputConfig{Dir: DefaultOutputDir},
		Cache:  CacheConfig{Backend: BackendFile, TTL: DefaultTTL},
	}
}

// Load reads path over the defaults. A missing file at the default
// location is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open config")
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Read decodes TOML from r over the defaults and validates the result.
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Canvas.Validate(); err != nil {
		return err
	}
	if c.Render.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.workers %d must be at least 1", c.Render.Workers)
	}
	if c.Output.Dir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "output.dir must not be empty")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache.backend %q", c.Cache.Backend)
	}
	_, err := c.Cache.TTLDuration()
	return err
}

// DefaultPath returns $XDG_CONFIG_HOME/featureview/config.toml, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the configured cache directory, or
// $XDG_CACHE_HOME/featureview, falling back to ~/.cache.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
