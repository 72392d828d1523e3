package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"esgrag/internal/domain"
	"esgrag/internal/session"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question",
	Long: `Indexes the corpus, retrieves the most relevant passages for the question
and prints the generated answer. With generator type "none" the retrieved
context is printed instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ans, err := a.svc.Ask(cmd.Context(), strings.Join(args, " "))
	if errors.Is(err, domain.ErrEmptyContext) {
		fmt.Fprintln(out, session.NoContext)
		return nil
	}
	if err != nil {
		return err
	}
	if ans.Text == "" {
		fmt.Fprintf(out, "Context:\n%s\n", ans.Context)
		return nil
	}
	fmt.Fprintf(out, "Answer: %s\n", ans.Text)
	return nil
}
