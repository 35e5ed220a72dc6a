package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "scrabble",
		Short: "CLI tool for the scrabble game API",
		Long: `scrabble is a CLI tool for interacting with the scrabble game JSON API.

It supports creating games, playing words, skipping turns, undo and redo,
and inspecting the board, hands and scores.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != "text" && cfg.Output != "json" {
				return fmt.Errorf("unknown output format %q", cfg.Output)
			}
			client = NewClient(cfg.ServerURL, cfg.Timeout)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: SCRABBLE_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout (env: SCRABBLE_TIMEOUT)")

	// Add subcommands
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		NewOutput(cfg.Output).PrintError(err)
		os.Exit(1)
	}
}
