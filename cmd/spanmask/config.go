package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the spanmask configuration file (~/.config/spanmask/config.yaml).
// Numeric fields are pointers so we can distinguish "not set" from zero values.
type Config struct {
	Strategy string   `yaml:"strategy"`
	MaskProb *float64 `yaml:"mask_prob"`
	SpanLen  *int64   `yaml:"span_len"`
	MinSpans *int64   `yaml:"min_spans"`
	Seed     *int64   `yaml:"seed"`

	Batch     *int64 `yaml:"batch"`
	MaxSeqLen *int64 `yaml:"max_seq_len"`
	MinLen    *int64 `yaml:"min_len"`
	Features  *int64 `yaml:"features"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	if configFile != "" {
		return configFile
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "spanmask", "config.yaml")
}

// LoadConfig reads the config file at path. A missing file yields a zero
// Config; an unreadable or malformed one is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// applyLoggingConfig applies config file defaults to the logging flags.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyMaskConfig applies config file defaults to mask and batch flags
// when the corresponding CLI flag was not explicitly set.
func applyMaskConfig(c *cli.Command, cfg Config) {
	if cfg.Strategy != "" && !c.IsSet("strategy") {
		strategyName = cfg.Strategy
	}
	if cfg.MaskProb != nil && !c.IsSet("mask-prob") {
		maskProb = *cfg.MaskProb
	}
	if cfg.SpanLen != nil && !c.IsSet("span-len") {
		spanLen = *cfg.SpanLen
	}
	if cfg.MinSpans != nil && !c.IsSet("min-spans") {
		minSpans = *cfg.MinSpans
	}
	if cfg.Seed != nil && !c.IsSet("seed") {
		seed = *cfg.Seed
	}
	if cfg.Batch != nil && !c.IsSet("batch") {
		batchSize = *cfg.Batch
	}
	if cfg.MaxSeqLen != nil && !c.IsSet("max-seq-len") {
		maxSeqLen = *cfg.MaxSeqLen
	}
	if cfg.MinLen != nil && !c.IsSet("min-len") {
		minLen = *cfg.MinLen
	}
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	applyMaskConfig(c, cfg)
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
