package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/teyteymey/minesweeper/config"
)

var (
	configPath string
	logLevel   string

	cfg config.Config
	log zerolog.Logger
)

func main() {
	root := &cobra.Command{
		Use:   "minesweeper",
		Short: "Knowledge-based minesweeper agent",
		Long: "Plays minesweeper by maintaining a base of logical sentences " +
			"about the board and inferring safe squares and mines from it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			log = newLogger(cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newPlayCmd(), newServeCmd(), newStatsCmd())

	if err := root.Execute(); err != nil {
		// The logger may not exist yet when config loading itself failed.
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).Level(lvl).With().Timestamp().Logger()
}
