// Package cmd implements the nursery-catalog CLI commands.
package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"nursery-catalog/internal/config"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "nursery-catalog",
	Short: "Build storefront import files from the nursery inventory",
	Long: "nursery-catalog reads the inventory spreadsheet and the photo folders,\n" +
		"normalizes tags, matches photos and writes one storefront import file\n" +
		"per category, plus a title review sheet and a category report.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./nursery.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(auditCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup грузит конфиг и поднимает логгер; общий шаг всех команд.
func setup() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, zerolog.Nop(), fmt.Errorf("loading config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, config.SetupLogger(cfg), nil
}
