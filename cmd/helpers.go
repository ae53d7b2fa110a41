package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/spacedmonkey/blockpress/internal/config"
	"github.com/spacedmonkey/blockpress/internal/logging"
	"github.com/spacedmonkey/blockpress/internal/patterns"
	"github.com/spacedmonkey/blockpress/internal/store"
	"github.com/spacedmonkey/blockpress/internal/theme"
)

// newLogger builds a logger from the configured log level.
func newLogger() logging.Logger {
	level := logging.LevelInfo
	switch viper.GetString("log-level") {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	return logging.NewLogger(&logging.Config{Level: level, Format: "text", Output: rootCmd.ErrOrStderr()})
}

// newStore builds the option store from configuration: file-backed under the
// state directory, or in-memory when none is configured.
func newStore(cfg *config.Config) (store.Store, error) {
	if cfg.Cache.StateDir == "" {
		return store.NewMemoryStore(), nil
	}
	s, err := store.NewFileStore(cfg.Cache.StateDir)
	if err != nil {
		return nil, fmt.Errorf("opening option store: %w", err)
	}
	return s, nil
}

// loadEnvironment loads config, theme, store, and scanner in one shot, since
// every subcommand needs the same setup.
func loadEnvironment() (*config.Config, *theme.Theme, store.Store, *patterns.Scanner, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	t, err := theme.Load(cfg.Theme.Path)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("failed to load theme: %w", err)
	}

	st, err := newStore(cfg)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	logger := newLogger()
	scanner := patterns.NewScanner(st, logger, patterns.Options{
		DisableCache: cfg.Development.ThemeDevMode,
		Multisite:    cfg.Development.Multisite,
	})

	return cfg, t, st, scanner, logger, nil
}
