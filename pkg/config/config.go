// Package config loads the optional cannon configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/cannon/config.toml unless a
// path is given explicitly. Every key is optional; command-line flags take
// precedence over file values.
//
//	[plan]
//	background = "#ffffff"
//	workers = 4
//
//	[output]
//	formats = ["json", "mcfunction", "png"]
//	scale = 2
//	caption = true
//
//	[cache]
//	backend = "file"   # file | redis | none
//	redis_addr = "localhost:6379"
//	namespace = ""
//
//	[server]
//	addr = ":8080"
//	max_upload = 8388608
package config

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cannon/pkg/coverage"
	"github.com/matzehuels/cannon/pkg/errors"
	"github.com/matzehuels/cannon/pkg/pipeline"
	"github.com/matzehuels/cannon/pkg/render"
)

const appName = "cannon"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the contents of a configuration file.
type Config struct {
	Plan   PlanConfig   `toml:"plan"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// PlanConfig configures decoding and candidate selection.
type PlanConfig struct {
	Background string `toml:"background"`
	Workers    int    `toml:"workers"`
}

// OutputConfig configures artifacts.
type OutputConfig struct {
	Formats []string `toml:"formats"`
	Scale   int      `toml:"scale"`
	Caption bool     `toml:"caption"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Namespace     string `toml:"namespace"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	MaxUpload int64  `toml:"max_upload"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Plan: PlanConfig{Background: coverage.DefaultBackground},
		Output: OutputConfig{
			Formats: append([]string(nil), pipeline.DefaultFormats...),
			Scale:   pipeline.DefaultScale,
		},
		Cache:  CacheConfig{Backend: BackendFile, RedisAddr: "localhost:6379"},
		Server: ServerConfig{Addr: ":8080", MaxUpload: 8 << 20},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/cannon/config.toml, falling back to
// ~/.config/cannon/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path. An empty path reads DefaultPath and treats a
// missing file as empty; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(string(data))
}

// Parse decodes TOML on top of Default and validates the result. Unknown
// keys are rejected.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := coverage.ParseColor(c.Plan.Background); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "plan.background")
	}
	if err := errors.ValidateWorkers(c.Plan.Workers); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "plan.workers")
	}
	if err := pipeline.ValidateFormats(c.Output.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output.formats")
	}
	if c.Output.Scale < 1 || c.Output.Scale > render.MaxScale {
		return errors.New(errors.ErrCodeInvalidConfig, "output.scale must be between 1 and %d", render.MaxScale)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"cache.backend must be one of: file, redis, none (got %q)", c.Cache.Backend)
	}
	if c.Server.MaxUpload <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_upload must be positive")
	}
	return nil
}

// PipelineOptions returns pipeline options carrying the file values.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Background: c.Plan.Background,
		Workers:    c.Plan.Workers,
		Formats:    append([]string(nil), c.Output.Formats...),
		Scale:      c.Output.Scale,
		Caption:    c.Output.Caption,
	}
}

// Write encodes c as TOML.
func Write(w io.Writer, c Config) error {
	return toml.NewEncoder(w).Encode(c)
}
