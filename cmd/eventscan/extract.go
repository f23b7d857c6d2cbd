package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/eventscan/internal/input"
	"github.com/pdiddy/eventscan/internal/scan"
	"github.com/pdiddy/eventscan/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract event candidates from plain text",
	Long: `Extract runs the event-extraction heuristics over text files (or stdin
when no files are given) and prints one ScanResult YAML document per input.
No OCR is performed; image inputs are rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		includeText, _ := cmd.Flags().GetBool("include-text")
		p := scan.New(scan.Options{
			Loader:    input.NewLoader(nil, cmd.InOrStdin()),
			Engine:    engine,
			Reference: types.DateOf(ref),
			Config:    types.ScanConfig{IncludeText: includeText},
			Stdout:    cmd.OutOrStdout(),
			Log:       logger,
		})
		return reportScan(p, cmd, args)
	},
}

func init() {
	extractCmd.Flags().String("reference-date", "", "resolve yearless dates relative to this YYYY-MM-DD (default: today)")
	extractCmd.Flags().Bool("include-text", false, "keep the input text in each result")

	rootCmd.AddCommand(extractCmd)
}
