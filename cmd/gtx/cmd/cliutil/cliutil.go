// Package cliutil loads configuration and logging for gtx subcommands.
package cliutil

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"general-transcriber/internal/config"
)

// Setup reads .env, builds the configuration and installs the default
// logger. Production uses JSON output; otherwise text.
func Setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := NewLogger(cfg, verbose)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// NewLogger builds the slog logger used by every subcommand
func NewLogger(cfg *config.Config, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
