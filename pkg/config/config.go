// Package config loads clawplot.toml.
//
// Every field has a usable default, so a missing file is not an error
// unless its path was given explicitly. Command-line flags are applied
// on top of the loaded values by the CLI.
//
//	outdir  = "_output"
//	plotdir = "_plots"
//	setplot = "euler"       # registered name or path to a setplot TOML
//	width   = 800
//	height  = 600
//	workers = 4
//
//	[cache]
//	backend    = "redis"    # file, none or redis
//	redis_addr = "localhost:6379"
//	ttl        = "24h"
//	prefix     = "lab"
//
//	[serve]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/clawplot/pkg/cache"
	"github.com/matzehuels/clawplot/pkg/errors"
	"github.com/matzehuels/clawplot/pkg/pipeline"
	"github.com/matzehuels/clawplot/pkg/plotdata"
	"github.com/matzehuels/clawplot/pkg/setplot"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "clawplot.toml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendNone  = "none"
	BackendRedis = "redis"
)

// DefaultServeAddr is the listen address of clawplot serve.
const DefaultServeAddr = "localhost:8080"

// Config is the contents of clawplot.toml.
type Config struct {
	OutDir  string `toml:"outdir"`
	PlotDir string `toml:"plotdir"`
	Setplot string `toml:"setplot"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Workers int    `toml:"workers"`

	Cache CacheConfig `toml:"cache"`
	Serve ServeConfig `toml:"serve"`
}

// CacheConfig selects and configures the image cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"` // file backend; empty means the user cache dir
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
	Prefix        string        `toml:"prefix"` // key namespace shared with other users of the cache
}

// ServeConfig configures the plot server.
type ServeConfig struct {
	Addr    string `toml:"addr"`
	Metrics bool   `toml:"metrics"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		OutDir:  plotdata.DefaultOutDir,
		PlotDir: plotdata.DefaultPlotDir,
		Setplot: setplot.DefaultName,
		Width:   pipeline.DefaultWidth,
		Height:  pipeline.DefaultHeight,
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       cache.TTLArtifact,
		},
		Serve: ServeConfig{Addr: DefaultServeAddr},
	}
}

// Load reads path on top of the defaults. An empty path reads DefaultFile
// if it exists.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := errors.ValidatePath(c.OutDir); err != nil {
		return fmt.Errorf("outdir: %w", err)
	}
	if err := errors.ValidatePath(c.PlotDir); err != nil {
		return fmt.Errorf("plotdir: %w", err)
	}
	if c.Width < 0 || c.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "image size must not be negative, got %dx%d", c.Width, c.Height)
	}
	if c.Workers < 0 || c.Workers > pipeline.MaxWorkers {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be between 0 and %d, got %d", pipeline.MaxWorkers, c.Workers)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis backend needs cache.redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be file, none or redis)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}

// Apply copies the directories into pd.
func (c *Config) Apply(pd *plotdata.PlotData) {
	pd.OutDir = c.OutDir
	pd.PlotDir = c.PlotDir
}

// Options returns the pipeline options the config implies.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{Width: c.Width, Height: c.Height, Workers: c.Workers}
}
