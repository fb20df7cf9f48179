// Package config resolves the run configuration once at startup. Values
// are layered: defaults, then an optional config file, then environment
// variables, with CLI flags merged on top by the caller. The scan and
// cache packages never see this package; they receive resolved values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const appName = "lss"

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	// CachePath is where the binary size cache lives.
	CachePath string `mapstructure:"cachePath"`

	// Verbose switches from the spinner to full diagnostic logging.
	Verbose bool `mapstructure:"verbose"`

	// IgnoreSymlinks excludes symlinks from directory size accumulation.
	IgnoreSymlinks bool `mapstructure:"ignoreSymlinks"`

	// SizeFormat is one of bytes, decimal, binary.
	SizeFormat string `mapstructure:"sizeFormat"`
}

// DefaultConfigDir is the per-user directory searched for config.yaml and
// used for the default cache location.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", appName)
}

// DefaultCachePath is the cache file location used when no override is
// configured.
func DefaultCachePath() string {
	return filepath.Join(DefaultConfigDir(), "cache.bin")
}

// Load reads configuration from file or environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("cachePath", DefaultCachePath())
	v.SetDefault("verbose", false)
	v.SetDefault("ignoreSymlinks", false)
	v.SetDefault("sizeFormat", "decimal")

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file; defaults and environment apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
