package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"linkeep/internal/models"
	"linkeep/internal/services"
)

var (
	listQuery    string
	listCategory string
	listPreset   string
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List memos, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app, err := newApp(ctx, configPath)
		if err != nil {
			fatal("Failed to start", err)
		}
		defer app.Close()

		memos, err := app.Services.Memos.All(ctx)
		if err != nil {
			fatal("Failed to list memos", err)
		}

		var category *string
		if listCategory != "" {
			category = &listCategory
		}
		var dateRange *models.DateRange
		if listPreset != "" {
			dateRange = &models.DateRange{Preset: models.RangePreset(listPreset)}
		}
		memos = services.FilterMemos(memos, listQuery, category, dateRange, time.Now())

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(memos); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, m := range memos {
			created := time.UnixMilli(m.CreatedAt).Format("2006-01-02 15:04")
			fmt.Printf("%d\t%s\t[%s]\t%s\n", m.ID, created, m.Category, m.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Substring filter over title, content and category")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Exact category filter")
	listCmd.Flags().StringVar(&listPreset, "since", "", "Creation date preset (1d, 3d, 1w, 2w)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
