package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const envConfig = "SCOT_CONFIG"

// Config represents the scot configuration file (~/.config/scot/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`

	// Records
	DefaultSize *int  `yaml:"default_size"`
	Strict      *bool `yaml:"strict"`
}

// configPath resolves the config file: --config, then $SCOT_CONFIG, then
// the user config dir.
func configPath() string {
	if configFile != "" {
		return configFile
	}
	if p := os.Getenv(envConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "scot", "config.yaml")
}

// LoadConfig reads the config file. A missing file yields a zero Config;
// a malformed one is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyRootConfig applies config file defaults to the global flags when the
// corresponding flag was not explicitly set.
func applyRootConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}

// applyValidateConfig applies config file defaults to validate command variables.
func applyValidateConfig(c *cli.Command, cfg Config, strict *bool) {
	if cfg.Strict != nil && !c.IsSet("strict") {
		*strict = *cfg.Strict
	}
}
