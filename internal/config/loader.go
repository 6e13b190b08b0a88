package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a collector YAML file and expands ${VAR} references. Unknown keys are an
// error so a misspelled setting does not silently fall back to its default.
func Load(path string) (*CollectorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read collector config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg CollectorConfig
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse collector config %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads config and fills every unset field.
func LoadWithDefaults(path string) (*CollectorConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate is what serve and provision use: load, fill defaults, validate.
func LoadAndValidate(path string) (*CollectorConfig, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid collector config %s: %w", path, err)
	}
	return cfg, nil
}
