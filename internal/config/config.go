package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/five82/crate/internal/catalog"
)

// Config is crate's runtime configuration.
type Config struct {
	BaseURL string
	HTTP    HTTPConfig
	Log     LogConfig
}

// HTTPConfig tunes the shared catalog client.
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// LogConfig places and rotates the log file.
type LogConfig struct {
	File       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

const (
	envPrefix         = "CRATE"
	defaultConfigPath = "~/.config/crate/config.toml"
	defaultLogFile    = "~/.local/share/crate/crate.log"
	defaultLogLevel   = "info"
	defaultTimeout    = 15 * time.Second
	defaultMaxSizeMB  = 5
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

// raw mirrors the TOML layout; viper fills it from file, env and defaults.
type raw struct {
	BaseURL string `mapstructure:"base_url"`
	HTTP    struct {
		Timeout   time.Duration `mapstructure:"timeout"`
		UserAgent string        `mapstructure:"user_agent"`
	} `mapstructure:"http"`
	Log struct {
		File       string `mapstructure:"file"`
		Level      string `mapstructure:"level"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
	} `mapstructure:"log"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		BaseURL: catalog.DefaultBaseURL,
		HTTP:    HTTPConfig{Timeout: defaultTimeout},
		Log: LogConfig{
			File:       mustExpand(defaultLogFile),
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAgeDays: defaultMaxAgeDays,
		},
	}
}

// Load reads the config file at path (or the default location), applies
// CRATE_* environment overrides and falls back to defaults when missing.
// A .env file in the working directory is loaded into the environment first.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if _, err := os.Stat(resolved); err == nil {
		v.SetConfigFile(resolved)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	var r raw
	if err := v.Unmarshal(&r); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return normalize(r), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", catalog.DefaultBaseURL)
	v.SetDefault("http.timeout", defaultTimeout)
	v.SetDefault("http.user_agent", "")
	v.SetDefault("log.file", defaultLogFile)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.max_size_mb", defaultMaxSizeMB)
	v.SetDefault("log.max_backups", defaultMaxBackups)
	v.SetDefault("log.max_age_days", defaultMaxAgeDays)
}

func normalize(r raw) Config {
	cfg := Default()

	if s := strings.TrimSpace(r.BaseURL); s != "" {
		cfg.BaseURL = s
	}
	if r.HTTP.Timeout > 0 {
		cfg.HTTP.Timeout = r.HTTP.Timeout
	}
	cfg.HTTP.UserAgent = strings.TrimSpace(r.HTTP.UserAgent)

	if s := strings.TrimSpace(r.Log.File); s != "" {
		cfg.Log.File = mustExpand(s)
	}
	if s := strings.TrimSpace(r.Log.Level); s != "" {
		cfg.Log.Level = strings.ToLower(s)
	}
	if r.Log.MaxSizeMB > 0 {
		cfg.Log.MaxSizeMB = r.Log.MaxSizeMB
	}
	if r.Log.MaxBackups >= 0 {
		cfg.Log.MaxBackups = r.Log.MaxBackups
	}
	if r.Log.MaxAgeDays > 0 {
		cfg.Log.MaxAgeDays = r.Log.MaxAgeDays
	}
	return cfg
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
