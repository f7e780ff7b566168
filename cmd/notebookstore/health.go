package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check connectivity to the notebook service",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend := newBackend(ctx)
		defer backend.Close(ctx)

		if err := backend.HealthCheck(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "unhealthy: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("ok")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show backend statistics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend := newBackend(ctx)
		defer backend.Close(ctx)

		stats, err := backend.Stats(ctx)
		if err != nil {
			fatal("reading stats", err)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(stats); err != nil {
			fatal("encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(statsCmd)
}
