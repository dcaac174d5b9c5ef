package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"newspulse/internal/config"
	"newspulse/internal/fetch"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the source-resolution cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many source resolutions are cached",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := fetch.OpenStore(config.CachePath())
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		n, err := store.Count()
		if err != nil {
			return err
		}
		fmt.Printf("Cache: %s\n", config.CachePath())
		fmt.Printf("Cached sources: %d\n", n)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached source resolutions",
	Long: `Cached resolutions never expire on their own; clear the cache when a
source's canonical identifier has changed upstream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := fetch.OpenStore(config.CachePath())
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		n, err := store.Clear()
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("Nothing to clear.")
		} else {
			fmt.Printf("Cleared %d cached source(s).\n", n)
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
