// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/eventscan/internal/ocrcache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or prune the OCR cache",
	Long: `Cache manages the SQLite database of recognized text configured by
cache.path. Rescanning an image with the same backend and languages reuses
the cached text instead of running OCR again.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the number of cached OCR results",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCache()
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cached result(s)\n", cfg.Cache.Path, n)
		return nil
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete cached OCR results",
	Long: `Prune deletes cached results older than --older-than, or every
result when --older-than is 0.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		olderThan, _ := cmd.Flags().GetDuration("older-than")

		store, err := openCache()
		if err != nil {
			return err
		}
		defer store.Close()

		var cutoff time.Time
		if olderThan > 0 {
			cutoff = time.Now().Add(-olderThan)
		}
		n, err := store.Prune(cmd.Context(), cutoff)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pruned %d cached result(s)\n", n)
		return nil
	},
}

func openCache() (*ocrcache.Store, error) {
	if cfg.Cache.Path == "" {
		return nil, errors.New("no OCR cache configured: set cache.path or EVENTSCAN_CACHE_PATH")
	}
	return ocrcache.Open(cfg.Cache.Path)
}

func init() {
	cachePruneCmd.Flags().Duration("older-than", 0, "only delete results older than this (e.g. 720h)")

	cacheCmd.AddCommand(cacheStatsCmd, cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}
