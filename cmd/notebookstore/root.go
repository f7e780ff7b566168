package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/notebookstore/adapter"
	"github.com/jonwraymond/notebookstore/config"
)

var (
	configPath string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notebookstore",
	Short: "Document-collection storage backed by a semantic notebook service",
	Long: `Notebookstore maps document collections onto notebooks of a semantic
notebook service reached over MCP. Records become text sources with an
encoded source name; queries run through the service's semantic Q&A.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "notebookstore.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// newBackend loads configuration, builds the backend, and connects it.
// Falls back to environment-only configuration when the config file
// does not exist.
func newBackend(ctx context.Context) *adapter.Backend {
	var (
		cfg *config.Config
		err error
	)
	if _, statErr := os.Stat(configPath); statErr == nil {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		fatal("loading configuration", err)
	}

	backend, err := adapter.New(adapter.Options{Config: cfg, Logger: slog.Default()})
	if err != nil {
		fatal("initializing backend", err)
	}
	if err := backend.Connect(ctx); err != nil {
		fatal("connecting to notebook service", err)
	}
	return backend
}
