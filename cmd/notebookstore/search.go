package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/notebookstore/store"
)

var (
	searchLimit int
	searchJSON  bool
	searchLocal bool
)

var searchCmd = &cobra.Command{
	Use:   "search [collection] [query]",
	Short: "Search a collection",
	Long: `Search a collection through the notebook service's semantic Q&A.
With --local, a keyword search runs against the in-process record cache
instead; no service query is made.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		collection, query := args[0], args[1]

		ctx := context.Background()
		backend := newBackend(ctx)
		defer backend.Close(ctx)

		var (
			records []store.Record
			err     error
		)
		if searchLocal {
			records, err = backend.LocalSearch(ctx, collection, query, searchLimit)
		} else {
			records, err = backend.Search(ctx, collection, store.SearchOptions{
				Filter: map[string]any{"query": query},
				Limit:  searchLimit,
			})
		}
		if err != nil {
			fatal("searching", err)
		}

		if searchJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(records); err != nil {
				fatal("encoding JSON", err)
			}
			return
		}
		for _, rec := range records {
			fmt.Printf("%.2f\t%s\t%s\n", rec.Score, rec.ID, rec.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	searchCmd.Flags().BoolVar(&searchLocal, "local", false, "Keyword search over the local cache")
}
