package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file is zero config", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.DefaultSize != nil || cfg.Strict != nil || cfg.LogLevel != "" {
			t.Fatalf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("fields decode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "log_level: debug\nlog_format: json\nserver_address: 0.0.0.0:9000\ndefault_size: 424\nstrict: true\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.ServerAddress != "0.0.0.0:9000" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
		if cfg.DefaultSize == nil || *cfg.DefaultSize != 424 {
			t.Fatalf("default_size mismatch: %v", cfg.DefaultSize)
		}
		if cfg.Strict == nil || !*cfg.Strict {
			t.Fatalf("strict mismatch: %v", cfg.Strict)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("default_size: [1, 2"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("expected parse error")
		}
	})
}

func TestConfigPathPrecedence(t *testing.T) {
	t.Setenv(envConfig, "/etc/scot/env.yaml")

	configFile = ""
	if got := configPath(); got != "/etc/scot/env.yaml" {
		t.Fatalf("env path mismatch: got %q", got)
	}

	configFile = "/tmp/flag.yaml"
	defer func() { configFile = "" }()
	if got := configPath(); got != "/tmp/flag.yaml" {
		t.Fatalf("flag path mismatch: got %q", got)
	}
}
