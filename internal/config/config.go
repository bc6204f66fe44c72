// Package config resolves the run configuration from flags,
// environment variables, and an optional YAML file. Precedence is
// flag > environment > file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/younsl/rdsmaint/internal/models"
)

// Environment variable names. The Slack token is only ever accepted
// through the environment or the config file, never as a flag.
const (
	EnvSlackToken   = "SLACK_TOKEN"
	EnvSlackChannel = "SLACK_CHANNEL"
)

// File is the on-disk YAML config shape.
type File struct {
	SlackToken   string   `yaml:"slack_token"`
	SlackChannel string   `yaml:"slack_channel"`
	Regions      []string `yaml:"regions"`
	BestEffort   bool     `yaml:"best_effort"`
}

// LoadFile parses a YAML config file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &file, nil
}

// Options carries the flag values the CLI collected.
type Options struct {
	ConfigPath string
	Regions    []string
	Channel    string
	BestEffort bool
	DryRun     bool
}

// Resolve merges flags, environment, and the optional config file
// into a complete run configuration. Boolean knobs are enabled if set
// in either the flags or the file.
func Resolve(opts Options) (models.Config, error) {
	var file File
	if opts.ConfigPath != "" {
		loaded, err := LoadFile(opts.ConfigPath)
		if err != nil {
			return models.Config{}, err
		}
		file = *loaded
	}

	cfg := models.Config{
		Regions:      opts.Regions,
		SlackChannel: opts.Channel,
		SlackToken:   os.Getenv(EnvSlackToken),
		BestEffort:   opts.BestEffort || file.BestEffort,
		DryRun:       opts.DryRun,
	}

	if cfg.SlackChannel == "" {
		cfg.SlackChannel = os.Getenv(EnvSlackChannel)
	}
	if cfg.SlackChannel == "" {
		cfg.SlackChannel = file.SlackChannel
	}

	if cfg.SlackToken == "" {
		cfg.SlackToken = file.SlackToken
	}

	if len(cfg.Regions) == 0 {
		cfg.Regions = file.Regions
	}

	if !cfg.DryRun {
		if cfg.SlackToken == "" {
			return models.Config{}, fmt.Errorf("slack token is required: set %s or slack_token in the config file", EnvSlackToken)
		}
		if cfg.SlackChannel == "" {
			return models.Config{}, fmt.Errorf("slack channel is required: set --channel, %s, or slack_channel in the config file", EnvSlackChannel)
		}
	}

	return cfg, nil
}
