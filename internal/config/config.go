package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/loykin/modsnoop/internal/env"
	"github.com/loykin/modsnoop/internal/logger"
)

// Defaults reproduce the persisted path/record contract. The toggle
// name, scheduler prefix, job-id variable and placeholder are part of
// what downstream tooling depends on; overriding them is a deployment
// decision, not a per-process one.
const (
	DefaultLogRoot       = "/var/log/modsnoop"
	DefaultDisableVar    = "DISABLE_MODSNOOP"
	DefaultEnvPrefix     = "COBALT"
	DefaultJobIDVar      = "COBALT_JOBID"
	DefaultJobIDFallback = "no-ID"

	// EnvLogRoot lets a deployment relocate the log tree without a
	// config file, since host processes rarely carry one.
	EnvLogRoot = "MODSNOOP_LOG_ROOT"
)

// Config is the full collector configuration.
type Config struct {
	LogRoot       string        `toml:"log_root" mapstructure:"log_root"`
	DisableVar    string        `toml:"disable_var" mapstructure:"disable_var"`
	EnvPrefix     string        `toml:"env_prefix" mapstructure:"env_prefix"`
	JobIDVar      string        `toml:"job_id_var" mapstructure:"job_id_var"`
	JobIDFallback string        `toml:"job_id_fallback" mapstructure:"job_id_fallback"`
	Sinks         []string      `toml:"sinks" mapstructure:"sinks"`
	Log           logger.Config `toml:"log" mapstructure:"log"`
}

// Default returns the zero-config setup: contract defaults, log root
// from MODSNOOP_LOG_ROOT when set, no secondary sinks, diagnostics
// discarded.
func Default() Config {
	c := Config{
		LogRoot:       DefaultLogRoot,
		DisableVar:    DefaultDisableVar,
		EnvPrefix:     DefaultEnvPrefix,
		JobIDVar:      DefaultJobIDVar,
		JobIDFallback: DefaultJobIDFallback,
	}
	if root := os.Getenv(EnvLogRoot); root != "" {
		c.LogRoot = root
	}
	return c
}

// Load reads a TOML config file and overlays it on the defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Clean(path))
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	c := Default()
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c.Normalized(), nil
}

// Normalized backfills any field an explicit config file blanked out;
// an empty contract field would silently break the path layout.
func (c Config) Normalized() Config {
	if c.LogRoot == "" {
		c.LogRoot = DefaultLogRoot
		if root := os.Getenv(EnvLogRoot); root != "" {
			c.LogRoot = root
		}
	}
	if c.DisableVar == "" {
		c.DisableVar = DefaultDisableVar
	}
	if c.EnvPrefix == "" {
		c.EnvPrefix = DefaultEnvPrefix
	}
	if c.JobIDVar == "" {
		c.JobIDVar = DefaultJobIDVar
	}
	if c.JobIDFallback == "" {
		c.JobIDFallback = DefaultJobIDFallback
	}
	return c
}

// JobID reads the scheduler-assigned job identifier, falling back to
// the literal placeholder when the variable is absent or empty.
func (c Config) JobID() string {
	if v := os.Getenv(c.JobIDVar); v != "" {
		return v
	}
	return c.JobIDFallback
}

// Disabled reports the toggle state at this instant. Callers check it
// both at registration and inside the shutdown callback, so setting
// the variable after registration still suppresses logging.
func (c Config) Disabled() bool {
	return env.LookupTruthy(c.DisableVar)
}
