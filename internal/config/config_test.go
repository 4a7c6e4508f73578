package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "csreplay.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Analysis.SampleRate != 64 || cfg.Analysis.MaxPositionTicks != 50000 || cfg.Analysis.FullPositionTicks != 200000 {
		t.Errorf("analysis defaults = %+v", cfg.Analysis)
	}
	if !cfg.Analysis.WeaponFires || !cfg.Analysis.Positions {
		t.Error("optional categories should default on")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
	if filepath.Base(cfg.Storage.DB) != "replays.db" {
		t.Errorf("storage.db = %s", cfg.Storage.DB)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
analysis:
  sample_rate: 32
  weapon_fires: false
logging:
  level: debug
  format: json
storage:
  db: /tmp/x.db
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.SampleRate != 32 || cfg.Analysis.WeaponFires {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	if cfg.Analysis.MaxPositionTicks != 50000 {
		t.Errorf("unset key lost its default: %d", cfg.Analysis.MaxPositionTicks)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || cfg.Storage.DB != "/tmp/x.db" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CSREPLAY_ANALYSIS_SAMPLE_RATE", "16")
	t.Setenv("CSREPLAY_LOGGING_LEVEL", "warn")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Analysis.SampleRate != 16 {
		t.Errorf("SampleRate = %d, want 16", cfg.Analysis.SampleRate)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %s, want warn", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		return cfg
	}
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"sample rate", func(c *Config) { c.Analysis.SampleRate = 0 }},
		{"max ticks", func(c *Config) { c.Analysis.MaxPositionTicks = 0 }},
		{"full below max", func(c *Config) { c.Analysis.FullPositionTicks = 10 }},
		{"db", func(c *Config) { c.Storage.DB = "" }},
		{"level", func(c *Config) { c.Logging.Level = "loud" }},
		{"format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg, _ := Load("")
	opts := cfg.PipelineOptions(false)
	if opts.SampleRate != 64 || opts.MaxPositionTicks != 50000 || !opts.WeaponFires || !opts.Positions {
		t.Errorf("opts = %+v", opts)
	}
	if full := cfg.PipelineOptions(true); full.MaxPositionTicks != 200000 {
		t.Errorf("full MaxPositionTicks = %d", full.MaxPositionTicks)
	}
}

func TestNewLogger(t *testing.T) {
	cfg, _ := Load("")
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"
	log, err := cfg.NewLogger()
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want JSON", log.Formatter)
	}
}
