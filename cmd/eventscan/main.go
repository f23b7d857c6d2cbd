// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the eventscan CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/eventscan/internal/config"
	"github.com/pdiddy/eventscan/internal/extract"
	"github.com/pdiddy/eventscan/internal/logging"
	"github.com/pdiddy/eventscan/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfg    types.Config
	logger = zerolog.Nop()
)

// rootCmd is the base command for the eventscan CLI.
var rootCmd = &cobra.Command{
	Use:   "eventscan",
	Short: "Find calendar events in screenshots, posters and notes",
	Long: `eventscan reads images or plain text, recognizes text with tesseract,
and extracts calendar-event candidates (title, date, start and end time).

Candidates are written as YAML for review. After editing, the export
command turns them into .ics files and Google Calendar links.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		used, err := config.Init(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}

		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		logger = logging.New(cfg.Logging, cmd.ErrOrStderr())
		attachLogger(cmd, logger)
		if used != "" {
			logger.Debug().Str("file", used).Msg("using config file")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./eventscan.yaml or ~/.config/eventscan/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")

	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// attachLogger stores l in the command context so packages that log via
// zerolog.Ctx, such as httputil, share the configured logger.
func attachLogger(cmd *cobra.Command, l zerolog.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(l.WithContext(ctx))
}

// referenceTime parses --reference-date, defaulting to now. Yearless dates
// resolve to their next occurrence after this instant.
func referenceTime(cmd *cobra.Command) (time.Time, error) {
	s, _ := cmd.Flags().GetString("reference-date")
	if s == "" {
		return time.Now(), nil
	}
	d, err := types.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--reference-date: %w", err)
	}
	return d.At(types.TimeOfDay{Hour: 12}), nil
}

func newEngine(ref time.Time) (*extract.Engine, error) {
	opts, err := extract.OptionsFromConfig(cfg.Extraction)
	if err != nil {
		return nil, err
	}
	return extract.New(extract.NewDateparserResolver(cfg.Extraction.Languages), ref, opts), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
