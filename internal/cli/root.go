// Package cli provides the cobra command tree for the esgrag binary.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	cfgPath string
	docsDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "esgrag",
	Short: "Ask questions about a folder of ESG documents",
	Long: `esgrag indexes the .txt files in a corpus directory, retrieves the passages
most similar to a question and asks a language model to answer from them.
The index lives in memory and is rebuilt on every run.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config (default ./config.yaml or ~/.config/esgrag/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&docsDir, "docs", "", "corpus directory, overrides corpus.path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
