package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var captureCategory string

var captureCmd = &cobra.Command{
	Use:   "capture [text]",
	Short: "Capture shared text as a memo",
	Long: `Run the capture pipeline on the given text: extract the first link,
derive a thumbnail, enrich, and persist the memo.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app, err := newApp(ctx, configPath)
		if err != nil {
			fatal("Failed to start", err)
		}
		defer app.Close()

		memo, err := app.Services.Capture.Capture(ctx, strings.Join(args, " "), captureCategory)
		if err != nil {
			fatal("Capture failed", err)
		}

		fmt.Printf("Captured memo %d: %s [%s]\n", memo.ID, memo.Title, memo.Category)
		if memo.Link != nil {
			fmt.Printf("Link: %s\n", *memo.Link)
		}
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().StringVarP(&captureCategory, "category", "c", "", "Category for the memo (defaults to the shared category)")
}
