package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"esgrag/internal/session"
	"esgrag/internal/textsplit"
)

// replyMsg carries the outcome of a question back into Update.
type replyMsg session.Reply

// Model is the Bubble Tea model for the interactive assistant.
type Model struct {
	ctx      context.Context
	asker    session.Asker
	input    textinput.Model
	viewport viewport.Model
	reply    session.Reply
	summary  string
	status   string
	cursor   int
	ready    bool
	busy     bool
	question string
}

// New creates a new TUI model instance.
func New(ctx context.Context, asker session.Asker, summary string) Model {
	ti := textinput.New()
	ti.Prompt = session.Prompt
	ti.Placeholder = "Ask about the ESG documents, or type exit"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		ctx:      ctx,
		asker:    asker,
		input:    ti,
		viewport: vp,
		summary:  summary,
		status:   "ESG Assistant is ready!",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // header + summary
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderReply())
		return m, nil
	case replyMsg:
		m.busy = false
		m.reply = session.Reply(msg)
		m.cursor = 0
		switch m.reply.Kind {
		case session.KindAnswer:
			m.status = fmt.Sprintf("Answered %q", m.question)
		case session.KindInfo, session.KindError:
			m.status = m.reply.Text
		}
		m.viewport.SetContent(m.renderReply())
		m.viewport.GotoTop()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if m.busy {
				return m, nil
			}
			line := m.input.Value()
			if session.IsExit(line) {
				m.status = session.GoodbyeText
				return m, tea.Quit
			}
			q := strings.TrimSpace(line)
			if q == "" {
				m.input.SetValue("")
				return m, nil
			}
			m.busy = true
			m.question = q
			m.status = "Thinking..."
			m.input.SetValue("")
			ctx, asker := m.ctx, m.asker
			return m, func() tea.Msg { return replyMsg(session.Turn(ctx, asker, q)) }
		case "down":
			if n := len(m.reply.Answer.Sources); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.viewport.SetContent(m.renderReply())
				return m, nil
			}
		case "up":
			if n := len(m.reply.Answer.Sources); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
				m.viewport.SetContent(m.renderReply())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and the current answer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("ESG Assistant")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderReply() string {
	switch m.reply.Kind {
	case session.KindAnswer:
	case session.KindInfo, session.KindError:
		return m.reply.Text
	default:
		return "Type your question below (or type 'exit' to quit)."
	}
	var b strings.Builder
	if m.reply.Answer.Text != "" {
		b.WriteString(answerStyle.Render("Answer:"))
		b.WriteString(" ")
		b.WriteString(m.reply.Answer.Text)
		b.WriteString("\n\n")
	}
	sources := m.reply.Answer.Sources
	if len(sources) == 0 {
		b.WriteString(m.reply.Text)
		return b.String()
	}
	r := sources[m.cursor]
	title := fmt.Sprintf("Source %d/%d  %s  score=%.3f", m.cursor+1, len(sources), r.Record.Source, r.Score)
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(highlightBestSentence(r.Record.Text, m.question))
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	answerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	unicodeWordRe  = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
)

func highlightBestSentence(text, query string) string {
	sentences := textsplit.Sentences(text)
	if len(sentences) == 0 {
		return text
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return strings.Join(sentences, " ")
	}
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := tokenOverlapScore(qTokens, s)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	sentences[bestIdx] = highlightStyle.Render(sentences[bestIdx])
	return strings.Join(sentences, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := unicodeWordRe.FindAllString(strings.ToLower(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
