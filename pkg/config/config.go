// Package config loads console settings from YAML (or JSON) files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/hackterm/pkg/domain"
)

// Config holds the tunable console settings.
type Config struct {
	Prompt           string        `yaml:"prompt" json:"prompt"`
	WriteDelay       time.Duration `yaml:"write_delay" json:"write_delay"`
	ClearDelay       time.Duration `yaml:"clear_delay" json:"clear_delay"`
	SkipSet          string        `yaml:"skip_set" json:"skip_set"`
	VariableTemplate string        `yaml:"variable_template" json:"variable_template"`
	InstanceKey      string        `yaml:"instance_key" json:"instance_key"`
	Guard            GuardConfig   `yaml:"guard" json:"guard"`
}

// GuardConfig selects where the single-instance claim is recorded.
// An empty RedisAddr keeps the claim in process memory.
type GuardConfig struct {
	RedisAddr string        `yaml:"redis_addr" json:"redis_addr"`
	Prefix    string        `yaml:"prefix" json:"prefix"`
	TTL       time.Duration `yaml:"ttl" json:"ttl"`
}

// Default returns the settings the console uses when nothing is configured.
func Default() Config {
	return Config{
		Prompt:           domain.DefaultPrompt,
		WriteDelay:       domain.DefaultWriteDelay,
		ClearDelay:       domain.DefaultClearDelay,
		SkipSet:          string(domain.DefaultSkipSet()),
		VariableTemplate: domain.DefaultVariableTemplate,
		InstanceKey:      domain.DefaultInstanceKey,
		Guard:            GuardConfig{Prefix: "hackterm:"},
	}
}

// Load reads a configuration file on top of the defaults.
// A missing file yields the defaults. JSON files are accepted since JSON is valid YAML,
// but durations must then be written as strings ("65ms").
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the animator cannot honour.
func (c Config) Validate() error {
	if c.WriteDelay < 0 || c.ClearDelay < 0 {
		return fmt.Errorf("%w: delays must not be negative", domain.ErrInvalidConfig)
	}
	if c.VariableTemplate == "" {
		return fmt.Errorf("%w: variable_template is required", domain.ErrInvalidConfig)
	}
	if c.InstanceKey == "" {
		return fmt.Errorf("%w: instance_key is required", domain.ErrInvalidConfig)
	}
	if c.Guard.TTL < 0 {
		return fmt.Errorf("%w: guard ttl must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}

// SkipRunes returns the skip-set as characters.
func (c Config) SkipRunes() []rune {
	return []rune(c.SkipSet)
}
