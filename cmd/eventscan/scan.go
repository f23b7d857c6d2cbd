// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/eventscan/internal/httputil"
	"github.com/pdiddy/eventscan/internal/input"
	"github.com/pdiddy/eventscan/internal/ocr"
	"github.com/pdiddy/eventscan/internal/ocrcache"
	"github.com/pdiddy/eventscan/internal/scan"
	"github.com/pdiddy/eventscan/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan [inputs...]",
	Short: "Extract event candidates from images, text files or URLs",
	Long: `Scan loads each input (a file path, an http(s) URL, or - for stdin),
runs OCR on images, and extracts event candidates. Results are written as
<name>-events.yaml under --out, or printed as YAML when --out is empty.
With --ics every candidate is also written as <name>-<n>.ics.

With no arguments scan reads standard input.`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(args) == 0 {
		args = []string{input.Stdin}
	}

	ref, err := referenceTime(cmd)
	if err != nil {
		return err
	}
	engine, err := newEngine(ref)
	if err != nil {
		return err
	}

	provider, err := ocr.New(ctx, cfg.OCR)
	if err != nil {
		logger.Warn().Err(err).Msg("OCR unavailable, image inputs will fail")
	}
	if provider != nil && cfg.Cache.Path != "" {
		store, err := ocrcache.Open(cfg.Cache.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		provider = ocrcache.NewCached(provider, store, string(cfg.OCR.Backend), cfg.OCR.Languages, logger)
	}

	p := scan.New(scan.Options{
		Loader:    input.NewLoader(httputil.NewClient(cfg.HTTP), cmd.InOrStdin()),
		OCR:       provider,
		Engine:    engine,
		Reference: types.DateOf(ref),
		Config:    cfg.Scan,
		Stdout:    cmd.OutOrStdout(),
		Log:       logger,
	})
	return reportScan(p, cmd, args)
}

// reportScan runs p over args and prints the batch summary to stderr.
func reportScan(p *scan.Pipeline, cmd *cobra.Command, args []string) error {
	summary, err := p.Run(cmd.Context(), args, cmd.ErrOrStderr())
	printSummary(cmd.ErrOrStderr(), summary)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d of %d input(s) failed", summary.Failed, summary.Total())
	}
	return nil
}

func printSummary(w io.Writer, s scan.Summary) {
	fmt.Fprintf(w, "\nScan summary: %d scanned, %d empty, %d failed (total: %d, events: %d)\n",
		s.Scanned, s.Empty, s.Failed, s.Total(), s.Events)
}

func init() {
	scanCmd.Flags().String("out", "", "directory for <name>-events.yaml files (default: print YAML)")
	scanCmd.Flags().Bool("ics", false, "also write one .ics file per candidate")
	scanCmd.Flags().Bool("include-text", false, "keep the recognized text in each result")
	scanCmd.Flags().String("ocr-backend", "tesseract", "OCR backend: tesseract or container")
	scanCmd.Flags().String("reference-date", "", "resolve yearless dates relative to this YYYY-MM-DD (default: today)")

	viper.BindPFlag("scan.output_dir", scanCmd.Flags().Lookup("out"))
	viper.BindPFlag("scan.write_ics", scanCmd.Flags().Lookup("ics"))
	viper.BindPFlag("scan.include_text", scanCmd.Flags().Lookup("include-text"))
	viper.BindPFlag("ocr.backend", scanCmd.Flags().Lookup("ocr-backend"))

	rootCmd.AddCommand(scanCmd)
}
