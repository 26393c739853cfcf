// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	DBURL           string        `mapstructure:"DB_URL"`
	GithubToken     string        `mapstructure:"GITHUB_TOKEN"`
	GithubUsername  string        `mapstructure:"GITHUB_USERNAME"`
	ExcludeListURL  string        `mapstructure:"EXCLUDE_LIST_URL"`
	SyncInterval    time.Duration `mapstructure:"SYNC_INTERVAL"`
	SyncConcurrency int           `mapstructure:"SYNC_CONCURRENCY"`
	ListenAddr      string        `mapstructure:"LISTEN_ADDR"`
}

// LoadConfig reads configuration from file and/or environment variables.
// GITHUB_USERNAME is the delegate owner: the account whose repository list is
// synced and whose own repository centrally hosts external configs.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SYNC_INTERVAL", "1h")
	viper.SetDefault("SYNC_CONCURRENCY", 5)
	viper.SetDefault("LISTEN_ADDR", ":3939")

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}
	if cfg.GithubToken == "" {
		return nil, errors.New("GITHUB_TOKEN is a required configuration field")
	}
	if cfg.GithubUsername == "" {
		return nil, errors.New("GITHUB_USERNAME is a required configuration field")
	}
	if cfg.SyncConcurrency < 1 {
		return nil, errors.New("SYNC_CONCURRENCY must be at least 1")
	}

	if cfg.ExcludeListURL == "" {
		cfg.ExcludeListURL = fmt.Sprintf(
			"https://raw.githubusercontent.com/%s/%s/main/.github/mosaic/.mosaicignore",
			cfg.GithubUsername, cfg.GithubUsername,
		)
	}

	return &cfg, nil
}
