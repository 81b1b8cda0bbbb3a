// Package config loads service settings from defaults, an optional config
// file, a .env file and GTM_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "GTM"
	// FileName is the config file name looked up in the working directory.
	FileName = "gtm-analyzer"
)

type Config struct {
	Port              string `mapstructure:"port"`
	CORSAllowedOrigin string `mapstructure:"cors_allowed_origin"`
	LogLevel          string `mapstructure:"log_level"`
	CacheSize         int    `mapstructure:"cache_size"`
	IncludePausedTags bool   `mapstructure:"include_paused_tags"`
	MaxBodyBytes      int64  `mapstructure:"max_body_bytes"`
}

func DefaultConfig() Config {
	return Config{
		Port:              ":8080",
		CORSAllowedOrigin: "*",
		LogLevel:          "info",
		CacheSize:         128,
		IncludePausedTags: true,
		MaxBodyBytes:      32 << 20,
	}
}

// Load resolves the configuration. When configFile is empty, gtm-analyzer.*
// is looked up in the working directory and skipped if absent.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("port", defaults.Port)
	v.SetDefault("cors_allowed_origin", defaults.CORSAllowedOrigin)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("cache_size", defaults.CacheSize)
	v.SetDefault("include_paused_tags", defaults.IncludePausedTags)
	v.SetDefault("max_body_bytes", defaults.MaxBodyBytes)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind port: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Port = normalizePort(cfg.Port)
	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("invalid config: max_body_bytes must be positive, got %d", cfg.MaxBodyBytes)
	}

	return &cfg, nil
}

func normalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
