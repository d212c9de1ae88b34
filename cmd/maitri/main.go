// Package main is the maitri command: HTTP service, console chat and crisis reports.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/easeaico/maitri/internal/config"
)

// Version is set at build time via -ldflags "-X main.Version=X.Y.Z".
var Version = "0.0.0-dev"

var rootCmd = &cobra.Command{
	Use:   "maitri",
	Short: "Emotional support companion for astronauts",
	Long: `maitri answers astronauts in the voice of a chosen persona, tracks their
emotional state and escalates crisis reports to ground control.

Commands:
  serve                      Run the HTTP API and the oversight sweeper
  chat                       Talk to a persona from the terminal
  report <astronaut_id>      Print the crisis report for an astronaut

Configuration is read from the environment and an optional .env file.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads and validates configuration and installs the default logger.
func loadConfig() (config.Config, error) {
	return loadConfigWith(config.Config.Validate)
}

// loadConfigWith is loadConfig with a caller-chosen validation step.
func loadConfigWith(validate func(config.Config) error) (config.Config, error) {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	slog.Info("configuration loaded", "backend", cfg.Backend, "model", cfg.LLMModel, "session_store", cfg.SessionStore)
	return cfg, nil
}
