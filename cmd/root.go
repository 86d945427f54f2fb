// Package cmd implements the CLI commands for citescore using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/citescore/config"
	"github.com/gaurav-prasanna/citescore/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagVerbose bool

	// Set by the root command before any subcommand runs.
	cfg    config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "citescore",
	Short: "citescore — score how citable a text or web page is for LLMs",
	Long: `citescore measures a text against structural and lexical heuristics
(sentence length, headings, lists, numbers, references, vocabulary diversity,
repetition) and recommends changes that make it easier for language models to
reuse and cite.

Usage:
  citescore analyze <url|file>... [flags]
  citescore analyze --text "..." [flags]
  citescore serve [flags]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = logging.New(cmd.ErrOrStderr(), cfg.Log.Level, flagVerbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file (default: $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose (debug) logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
