package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"linkeep/internal/models"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and change persisted settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app, err := newApp(ctx, configPath)
		if err != nil {
			fatal("Failed to start", err)
		}
		defer app.Close()

		s := app.Services.Settings
		fmt.Printf("view_mode:   %s\n", s.ViewMode().Get())
		fmt.Printf("theme_mode:  %s\n", s.ThemeMode().Get())
		fmt.Printf("language:    %s\n", s.Language().Get())
		fmt.Printf("ai_provider: %s\n", s.AIProvider().Get())
		if s.AIAPIKey().Get() != "" {
			fmt.Println("ai_api_key:  (set)")
		} else {
			fmt.Println("ai_api_key:  (unset)")
		}
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Change one setting",
	Long: `Change one setting and persist it.

Fields: view_mode (list|card), theme_mode (system|light|dark),
language, ai_provider (local|openai|gemini|claude), ai_api_key.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		app, err := newApp(ctx, configPath)
		if err != nil {
			fatal("Failed to start", err)
		}
		defer app.Close()

		field, value := args[0], args[1]
		s := app.Services.Settings

		switch field {
		case "view_mode":
			switch value {
			case "list":
				err = s.SetViewMode(ctx, models.ViewModeList)
			case "card":
				err = s.SetViewMode(ctx, models.ViewModeCard)
			default:
				fatal("Invalid value", fmt.Errorf("view_mode must be 'list' or 'card', got %q", value))
			}
		case "theme_mode":
			switch value {
			case "system":
				err = s.SetThemeMode(ctx, models.ThemeModeSystem)
			case "light":
				err = s.SetThemeMode(ctx, models.ThemeModeLight)
			case "dark":
				err = s.SetThemeMode(ctx, models.ThemeModeDark)
			default:
				fatal("Invalid value", fmt.Errorf("theme_mode must be 'system', 'light' or 'dark', got %q", value))
			}
		case "language":
			err = s.SetLanguage(ctx, value)
		case "ai_provider":
			provider, ok := models.ParseAIProvider(value)
			if !ok {
				fatal("Invalid value", fmt.Errorf("unknown provider %q", value))
			}
			err = s.SetAIProvider(ctx, provider)
		case "ai_api_key":
			err = s.SetAIAPIKey(ctx, value)
		default:
			fatal("Unknown field", fmt.Errorf("no setting named %q", field))
		}

		if err != nil {
			fatal("Failed to update setting", err)
		}
		fmt.Printf("Set %s to %s\n", field, value)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
