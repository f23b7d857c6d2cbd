// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/eventscan/internal/export"
	"github.com/pdiddy/eventscan/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export <events.yaml>...",
	Short: "Write reviewed candidates as .ics files and Google Calendar links",
	Long: `Export reads ScanResult YAML files produced by scan or extract (after
any manual edits), validates every candidate, writes one .ics file per
valid candidate into --out, and prints a Google Calendar link for each.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")

		var events []types.EventCandidate
		for _, path := range args {
			evs, err := readEvents(path)
			if err != nil {
				return err
			}
			events = append(events, evs...)
		}

		summary, err := export.WriteAll(outDir, events, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "\nExport summary: %d written, %d invalid (total: %d)\n",
			summary.Written, summary.Invalid, summary.Total())
		if summary.HasFailures() {
			return fmt.Errorf("%d event(s) failed validation", summary.Invalid)
		}
		return nil
	},
}

// readEvents collects the candidates from every YAML document in path.
func readEvents(path string) ([]types.EventCandidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var events []types.EventCandidate
	dec := yaml.NewDecoder(f)
	for {
		var result types.ScanResult
		err := dec.Decode(&result)
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		events = append(events, result.Events...)
	}
}

func init() {
	exportCmd.Flags().String("out", ".", "directory for .ics files")

	rootCmd.AddCommand(exportCmd)
}
