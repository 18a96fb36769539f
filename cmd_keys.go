package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"linkeep/internal/services"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage per-provider API keys in the OS keyring",
}

var keysSetCmd = &cobra.Command{
	Use:   "set <provider> <key>",
	Short: "Store an API key for a provider",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		keys := services.NewKeyringService()
		if err := keys.StoreAPIKey(args[0], args[1]); err != nil {
			fatal("Failed to store key", err)
		}
		fmt.Printf("Stored key for %s\n", args[0])
	},
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete <provider>",
	Short: "Remove a provider's API key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keys := services.NewKeyringService()
		if err := keys.DeleteAPIKey(args[0]); err != nil {
			fatal("Failed to delete key", err)
		}
		fmt.Printf("Deleted key for %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysSetCmd)
	keysCmd.AddCommand(keysDeleteCmd)
}
