// Package config loads CLI settings from symname.toml and SYMNAME_* variables.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"symname/internal/locale"
	"symname/internal/trace"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "symname.toml"

// EnvPrefix prefixes environment overrides, e.g. SYMNAME_TRACE_LEVEL.
const EnvPrefix = "SYMNAME"

// Config holds settings shared by every command.
type Config struct {
	Locale string      `mapstructure:"locale"`
	Color  string      `mapstructure:"color"`
	Jobs   int         `mapstructure:"jobs"`
	Trace  TraceConfig `mapstructure:"trace"`
}

// TraceConfig mirrors the --trace* flags.
type TraceConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
	Mode   string `mapstructure:"mode"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Locale: "en",
		Color:  "auto",
		Jobs:   0,
		Trace: TraceConfig{
			Level:  "off",
			Mode:   "stream",
			Format: "auto",
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("locale", def.Locale)
	v.SetDefault("color", def.Color)
	v.SetDefault("jobs", def.Jobs)
	v.SetDefault("trace.level", def.Trace.Level)
	v.SetDefault("trace.output", def.Trace.Output)
	v.SetDefault("trace.mode", def.Trace.Mode)
	v.SetDefault("trace.format", def.Trace.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads FileName (or another extension viper supports) from dir. A
// missing file is not an error; defaults and environment overrides still apply.
func Load(dir string) (*Config, error) {
	v := newViper()
	// no config type: it would make viper match the extensionless binary
	v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return decode(v)
}

// LoadFile reads an explicitly named configuration file, which must exist.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Color) {
	case "auto", "on", "off":
	default:
		errs = append(errs, fmt.Errorf("color: %q (expected: auto|on|off)", c.Color))
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs: must be >= 0, got %d", c.Jobs))
	}
	if _, err := locale.Match(c.Locale); err != nil {
		errs = append(errs, err)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TracerConfig converts the trace settings into a trace.Config.
func (c *Config) TracerConfig() (trace.Config, error) {
	level, err := trace.ParseLevel(c.Trace.Level)
	if err != nil {
		return trace.Config{}, err
	}
	mode, err := trace.ParseMode(c.Trace.Mode)
	if err != nil {
		return trace.Config{}, err
	}
	format, err := trace.ParseFormat(c.Trace.Format)
	if err != nil {
		return trace.Config{}, err
	}
	return trace.Config{Level: level, Mode: mode, Format: format, OutputPath: c.Trace.Output}, nil
}
