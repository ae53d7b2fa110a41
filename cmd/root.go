// Package cmd provides the command-line interface for blockpress with
// configuration management supporting multiple sources.
//
// Configuration precedence (highest to lowest):
//  1. Command-line flags (--config, --theme, etc.)
//  2. BLOCKPRESS_CONFIG_FILE environment variable - custom config file path
//  3. Individual environment variables (BLOCKPRESS_THEME_PATH, etc.)
//  4. Configuration file (.blockpress.yml)
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "blockpress",
	Short: "Theme block-pattern and global-styles tooling",
	Long: `Blockpress is a content-management tooling CLI for block themes. It
discovers a theme's block patterns, maintains the versioned pattern cache,
and resolves the theme's layered configuration into global stylesheets.

Quick Start:
  blockpress patterns list        List the active theme's block patterns
  blockpress styles stylesheet    Print the generated global stylesheet
  blockpress serve                Start the development server`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .blockpress.yml, can also use BLOCKPRESS_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("theme", "", "theme directory (overrides theme.path)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	bindFlags(rootCmd.PersistentFlags(), map[string]string{
		"theme.path": "theme",
		"log-level":  "log-level",
	})
}

// bindFlags binds flags to their viper configuration keys.
func bindFlags(fs *pflag.FlagSet, bindings map[string]string) {
	for key, name := range bindings {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "binding flag %s: %v\n", name, err)
		}
	}
}

// initConfig initializes the configuration system.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("BLOCKPRESS_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".blockpress")
	}

	// Automatic environment variable binding with the BLOCKPRESS_ prefix,
	// e.g. BLOCKPRESS_THEME_PATH, BLOCKPRESS_DEVELOPMENT_DEBUG.
	viper.SetEnvPrefix("BLOCKPRESS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or malformed config file degrades to defaults.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
