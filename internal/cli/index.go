package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the corpus and report what was stored",
	Args:  cobra.NoArgs,
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	r := a.report
	fmt.Fprintf(out, "Files:   %d\n", r.Files)
	fmt.Fprintf(out, "Chunks:  %d\n", r.Chunks)
	fmt.Fprintf(out, "Records: %d\n", r.Records)
	fmt.Fprintf(out, "Skipped: %d\n", len(r.Failures))
	for _, f := range r.Failures {
		fmt.Fprintf(out, "  %s #%d: %v\n", f.Source, f.Index, f.Err)
	}
	if s := a.svc.Summary(); s != "" {
		fmt.Fprintf(out, "\nSummary:\n%s\n", s)
	}
	return nil
}
