// Package config provides configuration management for blockpress using
// Viper for flexible loading from files, environment variables, and
// command-line flags.
//
// Configuration supports YAML files, environment variable overrides with the
// BLOCKPRESS_ prefix, and validation. It covers the active theme location,
// the option store state directory, development-mode switches that disable
// caching, and the development server settings.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Theme       ThemeConfig       `yaml:"theme"`
	Cache       CacheConfig       `yaml:"cache"`
	Development DevelopmentConfig `yaml:"development"`
	Server      ServerConfig      `yaml:"server"`
}

type ThemeConfig struct {
	// Path is the active theme's root directory.
	Path string `yaml:"path"`
}

type CacheConfig struct {
	// StateDir is where the file-backed option store keeps its data.
	// Empty selects a purely in-memory store.
	StateDir string `yaml:"state_dir"`
}

type DevelopmentConfig struct {
	// ThemeDevMode disables pattern caching so edits to pattern files
	// take effect on every request.
	ThemeDevMode bool `yaml:"theme_dev_mode"`
	// Debug disables the derived stylesheet caches.
	Debug bool `yaml:"debug"`
	// AdminContext marks requests served in an administrative context.
	AdminContext bool `yaml:"admin_context"`
	// Multisite marks a multi-site deployment; per-site options are then
	// not marked for autoloading.
	Multisite bool `yaml:"multisite"`
	// SeparateBlockAssets loads per-block stylesheets instead of one
	// combined global stylesheet.
	SeparateBlockAssets bool `yaml:"separate_block_assets"`
}

type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load builds the configuration from viper's merged sources, applies
// defaults, and validates the result.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Workarounds for viper's handling of nested scalars set via env or
	// flags.
	if viper.IsSet("theme.path") {
		config.Theme.Path = viper.GetString("theme.path")
	}
	if viper.IsSet("cache.state_dir") {
		config.Cache.StateDir = viper.GetString("cache.state_dir")
	}
	if viper.IsSet("development.theme_dev_mode") {
		config.Development.ThemeDevMode = viper.GetBool("development.theme_dev_mode")
	}
	if viper.IsSet("development.debug") {
		config.Development.Debug = viper.GetBool("development.debug")
	}
	if viper.IsSet("development.multisite") {
		config.Development.Multisite = viper.GetBool("development.multisite")
	}
	if viper.IsSet("development.separate_block_assets") {
		config.Development.SeparateBlockAssets = viper.GetBool("development.separate_block_assets")
	}
	if viper.IsSet("server.allowed_origins") {
		config.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")
	}

	// Defaults.
	if config.Theme.Path == "" {
		config.Theme.Path = "."
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8090
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for security and correctness.
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := validatePath(config.Theme.Path); err != nil {
		return fmt.Errorf("theme config: invalid path %q: %w", config.Theme.Path, err)
	}
	if config.Cache.StateDir != "" {
		if err := validatePath(config.Cache.StateDir); err != nil {
			return fmt.Errorf("cache config: invalid state_dir %q: %w", config.Cache.StateDir, err)
		}
	}
	return nil
}

// validateServerConfig validates development server values.
func validateServerConfig(config *ServerConfig) error {
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}

	if config.Host != "" {
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
		for _, char := range dangerousChars {
			if strings.Contains(config.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}

	return nil
}

// validatePath validates a file path for safety.
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
