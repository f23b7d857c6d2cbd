package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/eventscan/internal/ocr"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of eventscan and the local tesseract",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "eventscan %s\n", version)

		v, err := ocr.NewTesseract(cfg.OCR).Version(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "tesseract: not found")
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
