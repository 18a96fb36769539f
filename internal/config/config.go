// Package config loads runtime startup configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when --config is not provided.
const DefaultConfigPath = "linkeep.yml"

const (
	defaultListenAddr        = ":8090"
	defaultEnrichmentTimeout = 30
	defaultLogLevel          = "info"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	DBPath                   string `yaml:"db_path"`
	ListenAddr               string `yaml:"listen_addr"`
	EnrichmentTimeoutSeconds int    `yaml:"enrichment_timeout_seconds"`
	LogLevel                 string `yaml:"log_level"`
}

// Load reads the config file at path. A missing file yields the defaults;
// a malformed file is an error.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if path == "" {
		path = DefaultConfigPath
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}
	if c.EnrichmentTimeoutSeconds <= 0 {
		c.EnrichmentTimeoutSeconds = defaultEnrichmentTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}

// EnrichmentTimeout returns the bounded timeout for remote enrichment calls.
func (c *AppConfig) EnrichmentTimeout() time.Duration {
	return time.Duration(c.EnrichmentTimeoutSeconds) * time.Second
}
