package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the xdf-tagger configuration file
// (~/.config/xdf-tagger/config.yaml). Numeric fields are pointers so we
// can distinguish "not set" from zero values.
type Config struct {
	// Output
	Suffix string `yaml:"suffix"`
	Jobs   *int64 `yaml:"jobs"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
	ServerDir     string `yaml:"server_dir"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "xdf-tagger", "config.yaml")
}

// applyTagConfig applies config file defaults to the tagging flags when
// the corresponding CLI flag was not explicitly set.
func applyTagConfig(c *cli.Command, cfg Config) {
	if cfg.Suffix != "" && !c.IsSet("suffix") {
		suffix = cfg.Suffix
	}
	if cfg.Jobs != nil && !c.IsSet("jobs") && !c.IsSet("j") {
		numJobs = *cfg.Jobs
	}
	applyLogConfig(c, cfg)
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr, dir *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.ServerDir != "" && !c.IsSet("dir") {
		*dir = cfg.ServerDir
	}
	applyLogConfig(c, cfg)
}

func applyLogConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
