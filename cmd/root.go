package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"zipbatch/internal/config"
)

var (
	configPath string
	logLevel   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:           "zipbatch",
	Short:         "zipbatch 📦 - extract many zip files at once",
	Long:          "zipbatch 📦 extracts a batch of zip archives into one output folder, optionally giving each archive its own subfolder.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with default settings")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")
}

// loadConfig reads --config and lets explicitly set root flags win.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

// newLogger sends logs to the configured file, or to stderr unless a
// full-screen UI owns the terminal. The returned func releases the log file.
func newLogger(cfg config.Config, interactive bool) (zerolog.Logger, func(), error) {
	if cfg.LogFile != "" {
		f, err := config.OpenLogFile(cfg.LogFile)
		if err != nil {
			return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
		}
		return config.NewLogger(cfg.LogLevel, f), func() { _ = f.Close() }, nil
	}
	if interactive {
		return zerolog.Nop(), func() {}, nil
	}
	return config.NewLogger(cfg.LogLevel, os.Stderr), func() {}, nil
}
