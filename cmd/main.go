package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vrajamarii/internal/config"
	"vrajamarii/internal/logger"
)

const serviceName = "vrajamarii-api"

// Version is injected at build time via -ldflags.
var Version = "dev"

// @title Vraja Marii API
// @version 1.0
// @description Waitlist, profile and initial evaluation API of the Vraja Marii wellness programme.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:          "vrajamarii",
		Short:        "Vraja Marii backend",
		Version:      Version,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(newServeCommand(&envFile))
	cmd.AddCommand(newMigrateCommand(&envFile))
	cmd.AddCommand(newSeedCommand(&envFile))
	return cmd
}

// bootstrap loads the configuration and builds the logger every command
// starts with.
func bootstrap(envFile string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
