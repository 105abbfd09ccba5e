// Package config provides configuration management for the application.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/vrickster/vault/internal/constants"
)

const defaultConfigFile = "config.json"

// Config holds the application configuration. It supports loading from
// environment variables and an optional JSON file; environment variables
// take precedence.
type Config struct {
	// HTTP
	Port      string `json:"PORT"`
	StaticDir string `json:"STATIC_DIR"`

	// API keys
	TMDBAPIKey string `json:"TMDB_API_KEY"`

	// Upstream bases; ConsumetBase may point at the local proxy to
	// avoid browser cross-origin restrictions
	ConsumetBase  string `json:"CONSUMET_BASE"`
	AniListBase   string `json:"ANILIST_BASE"`
	TMDBBase      string `json:"TMDB_BASE"`
	ProxyUpstream string `json:"PROXY_UPSTREAM"`

	// Storage
	StorePath string `json:"STORE_PATH"`
}

// Load reads configuration from the optional JSON file, then applies
// environment overrides and defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "failed to load config file")
		}
	}

	cfg.loadFromEnv()
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	for env, target := range map[string]*string{
		"PORT":           &c.Port,
		"STATIC_DIR":     &c.StaticDir,
		"TMDB_API_KEY":   &c.TMDBAPIKey,
		"CONSUMET_BASE":  &c.ConsumetBase,
		"ANILIST_BASE":   &c.AniListBase,
		"TMDB_BASE":      &c.TMDBBase,
		"PROXY_UPSTREAM": &c.ProxyUpstream,
		"STORE_PATH":     &c.StorePath,
	} {
		if v := os.Getenv(env); v != "" {
			*target = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = constants.DefaultPort
	}
	if c.ConsumetBase == "" {
		c.ConsumetBase = constants.ConsumetBase
	}
	if c.AniListBase == "" {
		c.AniListBase = constants.AniListBase
	}
	if c.TMDBBase == "" {
		c.TMDBBase = constants.TMDBBase
	}
	if c.ProxyUpstream == "" {
		c.ProxyUpstream = constants.ConsumetBase
	}
	if c.StorePath == "" {
		c.StorePath = constants.DefaultStorePath
	}
	if c.StaticDir == "" {
		c.StaticDir = "./public"
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
