package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"linkeep/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "linkeep",
	Short: "Capture shared text and links as enriched memos",
	Long: `Linkeep turns shared text into persisted memos. Each capture extracts
the first link, derives a thumbnail, and fills in title, content and
category, via the configured AI provider or a local fallback.`,
}

// Execute runs the CLI. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "Path to the config file")
}
