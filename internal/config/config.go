// Package config loads the analyzer configuration from an optional YAML file,
// CSREPLAY_* environment variables and built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/pable/cs-replay-analyzer/internal/pipeline"
)

// EnvPrefix is prepended to every environment override, e.g.
// CSREPLAY_ANALYSIS_SAMPLE_RATE.
const EnvPrefix = "CSREPLAY"

type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis" json:"analysis"`
	Logging  LoggingConfig  `mapstructure:"logging" json:"logging"`
	Storage  StorageConfig  `mapstructure:"storage" json:"storage"`
}

type AnalysisConfig struct {
	SampleRate        int  `mapstructure:"sample_rate" json:"sample_rate"`
	MaxPositionTicks  int  `mapstructure:"max_position_ticks" json:"max_position_ticks"`
	FullPositionTicks int  `mapstructure:"full_position_ticks" json:"full_position_ticks"`
	WeaponFires       bool `mapstructure:"weapon_fires" json:"weapon_fires"`
	Positions         bool `mapstructure:"positions" json:"positions"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

type StorageConfig struct {
	DB string `mapstructure:"db" json:"db"`
}

// Load reads the configuration. An empty path skips the file and uses
// defaults plus environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.sample_rate", 64)
	v.SetDefault("analysis.max_position_ticks", 50000)
	v.SetDefault("analysis.full_position_ticks", 200000)
	v.SetDefault("analysis.weapon_fires", true)
	v.SetDefault("analysis.positions", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("storage.db", DefaultDBPath())
}

// DefaultDBPath returns ~/.csreplay/replays.db, or a path relative to the
// working directory when the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".csreplay", "replays.db")
}

func (c *Config) Validate() error {
	if c.Analysis.SampleRate < 1 {
		return fmt.Errorf("analysis.sample_rate must be at least 1")
	}
	if c.Analysis.MaxPositionTicks < 1 {
		return fmt.Errorf("analysis.max_position_ticks must be at least 1")
	}
	if c.Analysis.FullPositionTicks < c.Analysis.MaxPositionTicks {
		return fmt.Errorf("analysis.full_position_ticks must not be below analysis.max_position_ticks")
	}
	if c.Storage.DB == "" {
		return fmt.Errorf("storage.db is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// PipelineOptions converts the analysis section. With full set, positions
// are sampled up to FullPositionTicks instead of MaxPositionTicks.
func (c *Config) PipelineOptions(full bool) pipeline.Options {
	maxTicks := c.Analysis.MaxPositionTicks
	if full {
		maxTicks = c.Analysis.FullPositionTicks
	}
	return pipeline.Options{
		SampleRate:       c.Analysis.SampleRate,
		MaxPositionTicks: maxTicks,
		WeaponFires:      c.Analysis.WeaponFires,
		Positions:        c.Analysis.Positions,
	}
}

// NewLogger builds a logger writing to stderr at the configured level and format.
func (c *Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	if c.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return log, nil
}
