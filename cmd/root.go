// Package cmd implements the simon command line.
package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/simon/internal/config"
	"github.com/iburimskiy/simon/internal/simon"
)

var (
	cfgFile  string
	logLevel string
	cfg      config.Config
)

var rootCmd = &cobra.Command{
	Use:   "simon",
	Short: "Repeat the growing sequence of flashes and tones",
	Long: `A four panel memory game. Watch the panels flash, then click them back
in the same order. Every round adds one more step.

Running simon without a subcommand opens the game window.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error (default $LOG_LEVEL or info)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, args []string) error {
	setupLogging(cmd)

	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded
	log.Debug().Str("config", cfgFile).Msg("config loaded")
	return nil
}

func setupLogging(cmd *cobra.Command) {
	level := logLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
	}
}

// sessionSource returns the per-session random source factory for seed.
// A zero seed leaves each session to pick its own.
func sessionSource(seed uint64) func() simon.Source {
	if seed == 0 {
		return nil
	}
	return func() simon.Source {
		return rand.New(rand.NewPCG(seed, 0))
	}
}

func printf(cmd *cobra.Command, format string, a ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}
