package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/notebookstore/store"
)

var (
	insertID      string
	insertURI     string
	insertTitle   string
	insertContent string
)

var insertCmd = &cobra.Command{
	Use:   "insert [collection]",
	Short: "Insert a record into a collection",
	Long: `Insert a record into a collection. The content comes from --content,
or from stdin when the flag is not set.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content := insertContent
		if content == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("reading stdin", err)
			}
			content = string(data)
		}
		if content == "" {
			fatal("inserting record", fmt.Errorf("no content given"))
		}

		ctx := context.Background()
		backend := newBackend(ctx)
		defer backend.Close(ctx)

		id, err := backend.Insert(ctx, args[0], store.Record{
			ID:      insertID,
			URI:     insertURI,
			Title:   insertTitle,
			Content: content,
		})
		if err != nil {
			fatal("inserting record", err)
		}
		fmt.Println(id)
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
	insertCmd.Flags().StringVar(&insertID, "id", "", "Record ID (generated when empty)")
	insertCmd.Flags().StringVar(&insertURI, "uri", "", "Record URI")
	insertCmd.Flags().StringVar(&insertTitle, "title", "", "Record title")
	insertCmd.Flags().StringVar(&insertContent, "content", "", "Record content (defaults to stdin)")
}
