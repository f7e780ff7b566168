package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [collection] [id...]",
	Short: "Delete records by ID",
	Long: `Delete records by ID. Deletion is best effort: failures are logged
and the reported count covers confirmed deletions only.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend := newBackend(ctx)
		defer backend.Close(ctx)

		n, err := backend.Delete(ctx, args[0], args[1:])
		if err != nil {
			fatal("deleting records", err)
		}
		fmt.Printf("deleted %d of %d\n", n, len(args)-1)
	},
}

var countCmd = &cobra.Command{
	Use:   "count [collection]",
	Short: "Count cached records in a collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend := newBackend(ctx)
		defer backend.Close(ctx)

		n, err := backend.Count(ctx, args[0], nil)
		if err != nil {
			fatal("counting records", err)
		}
		fmt.Println(n)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(countCmd)
}
