package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [collection] [id...]",
	Short: "Get cached records by ID",
	Long: `Get records by ID from the in-process cache. Only records inserted
through this process are visible; unknown IDs are skipped.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend := newBackend(ctx)
		defer backend.Close(ctx)

		records, err := backend.Get(ctx, args[0], args[1:])
		if err != nil {
			fatal("getting records", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(records); err != nil {
			fatal("encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
