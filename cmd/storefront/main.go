package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nikolayk812/storefront-state/internal/config"
	"github.com/nikolayk812/storefront-state/internal/logger"
	"github.com/spf13/cobra"
)

const serviceName = "storefront"

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   serviceName,
		Short: "Shared cart and session state for a small storefront",
		Long: `storefront keeps a shopping cart and a user session in memory and
shares them with every presentation layer: a JSON and WebSocket API
(serve) or a scripted terminal walk-through (demo).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		demoCmd(),
		seedCmd(),
		versionCmd(),
	)

	return rootCmd
}

// setup loads the configuration and builds the logger every command shares.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config.Load: %w", err)
	}

	log := logger.New(logger.Options{
		Service: serviceName,
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Output:  cmd.ErrOrStderr(),
	})

	return cfg, log, nil
}
