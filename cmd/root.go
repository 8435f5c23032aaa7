// Package cmd implements the CLI commands for TagPipe using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/erik-winther/tagpipe/core/config"
)

// Persistent flag variables, shared by every command.
var (
	flagConfig  string
	flagVerbose bool
)

// Process-wide state built once in the persistent pre-run.
var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tagpipe",
	Short: "TagPipe — make PDF files accessible",
	Long: `TagPipe post-processes PDF files to add accessibility metadata:
language, title and author inference, heuristic heading detection,
alt text for images, and a minimal tagged-PDF structure tree.

Usage:
  tagpipe analyze <input.pdf>
  tagpipe process <input.pdf> -o accessible.pdf`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML file overriding classification tables and thresholds")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
