package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"esgrag/internal/session"
	"esgrag/internal/tui"
)

var chatPlain bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question session",
	Long: `Indexes the corpus and then answers questions until you type exit or quit.
By default a terminal UI is used; --plain reads one question per line from stdin.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatPlain, "plain", false, "line-oriented mode without the terminal UI")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	if chatPlain {
		cmd.PrintErrln("ESG Assistant is ready! Type 'exit' or 'quit' to end the session.")
		return session.RunPlain(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), a.svc)
	}
	p := tea.NewProgram(tui.New(cmd.Context(), a.svc, a.header()), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	cmd.Println(session.GoodbyeText)
	return nil
}
