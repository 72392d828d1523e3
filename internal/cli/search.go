package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Show the passages most similar to a query",
	Long: `Indexes the corpus and lists the best matching passages with their cosine
similarity scores. No answer is generated.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default retrieval.top_k)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	limit := searchLimit
	if limit <= 0 {
		limit = *a.cfg.Retrieval.TopK
	}
	results, err := a.svc.Search(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(out, "[%d] %s #%d (%.3f)\n", i+1, r.Record.Source, r.Record.Index, r.Score)
		fmt.Fprintf(out, "    %s\n\n", snippet(r.Record.Text, 160))
	}
	return nil
}

func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n]) + "..."
}
