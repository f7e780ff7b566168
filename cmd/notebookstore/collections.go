package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var collectionsJSON bool

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage collections",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mapped collections",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend := newBackend(ctx)
		defer backend.Close(ctx)

		names, err := backend.ListCollections(ctx)
		if err != nil {
			fatal("listing collections", err)
		}

		if collectionsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(names); err != nil {
				fatal("encoding JSON", err)
			}
			return
		}
		for _, name := range names {
			info, err := backend.CollectionInfo(ctx, name)
			if err != nil || info == nil {
				fmt.Println(name)
				continue
			}
			fmt.Printf("%s\t%s\t%d sources\n", name, info.NotebookID, info.SourceCount)
		}
	},
}

var collectionsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a collection backed by a new notebook",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend := newBackend(ctx)
		defer backend.Close(ctx)

		created, err := backend.CreateCollection(ctx, args[0], nil)
		if err != nil {
			fatal("creating collection", err)
		}
		if !created {
			fmt.Printf("collection %s already exists\n", args[0])
			return
		}
		fmt.Printf("created collection %s\n", args[0])
	},
}

var collectionsDropCmd = &cobra.Command{
	Use:   "drop [name]",
	Short: "Drop a collection and delete its notebook",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		backend := newBackend(ctx)
		defer backend.Close(ctx)

		dropped, err := backend.DropCollection(ctx, args[0])
		if err != nil {
			fatal("dropping collection", err)
		}
		if !dropped {
			fmt.Fprintf(os.Stderr, "collection %s not dropped\n", args[0])
			os.Exit(1)
		}
		fmt.Printf("dropped collection %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
	collectionsCmd.AddCommand(collectionsListCmd)
	collectionsCmd.AddCommand(collectionsCreateCmd)
	collectionsCmd.AddCommand(collectionsDropCmd)
	collectionsListCmd.Flags().BoolVar(&collectionsJSON, "json", false, "Output in JSON format")
}
