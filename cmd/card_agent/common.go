package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nextlevelcleaning/cards/internal/config"
	"github.com/nextlevelcleaning/cards/internal/observability"
)

var (
	configPath string
	siteDir    string
	logLevel   string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config JSON file")
	rootCmd.PersistentFlags().StringVar(&siteDir, "site", "", "Site directory (overrides site_dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed output")
}

// loadConfig reads the config file when given, fills defaults, applies the persistent
// flags and validates the result.
func loadConfig() (*config.Config, error) {
	defaults := config.Defaults()
	cfg := defaults
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(defaults)
	}
	if siteDir != "" {
		cfg.SiteDir = siteDir
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newLogger builds the CLI logger. Without --log-level only warnings are shown, or
// everything from debug up in verbose mode.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := logLevel
	if level == "" {
		level = "warn"
		if cfg != nil && cfg.Verbose {
			level = "debug"
		}
	}
	logger, err := observability.NewLogger(level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

func printer(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.OutOrStdout())
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
