package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgrag/internal/domain"
	"esgrag/internal/service"
	"esgrag/internal/session"
)

type stubAsker struct {
	asked []string
	ans   service.Answer
	err   error
}

func (s *stubAsker) Ask(_ context.Context, q string) (service.Answer, error) {
	s.asked = append(s.asked, q)
	return s.ans, s.err
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func submit(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestView_LoadingUntilSized(t *testing.T) {
	m := New(context.Background(), &stubAsker{}, "summary")
	assert.Equal(t, "Loading...", m.View())
	assert.Contains(t, sized(t, m).View(), "ESG Assistant")
}

func TestEnter_ExitQuits(t *testing.T) {
	asker := &stubAsker{}
	m := sized(t, New(context.Background(), asker, ""))

	_, cmd := submit(t, m, " Quit ")

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, asker.asked)
}

func TestEnter_BlankIsIgnored(t *testing.T) {
	asker := &stubAsker{}
	m := sized(t, New(context.Background(), asker, ""))

	m, cmd := submit(t, m, "   ")

	assert.Nil(t, cmd)
	assert.False(t, m.busy)
	assert.Empty(t, asker.asked)
}

func TestEnter_AsksAndRendersAnswer(t *testing.T) {
	asker := &stubAsker{ans: service.Answer{
		Text: "Emissions fell 12%.",
		Sources: []domain.SearchResult{
			{Record: domain.Record{Source: "climate.txt", Text: "Emissions fell 12%. Offices moved."}, Score: 0.91},
			{Record: domain.Record{Source: "annex.txt", Text: "Methodology follows the GHG Protocol."}, Score: 0.42},
		},
	}}
	m := sized(t, New(context.Background(), asker, ""))

	m, cmd := submit(t, m, "How did emissions change?")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	next, _ := m.Update(cmd())
	m = next.(Model)

	assert.False(t, m.busy)
	assert.Equal(t, []string{"How did emissions change?"}, asker.asked)
	assert.Contains(t, m.renderReply(), "Emissions fell 12%.")
	assert.Contains(t, m.renderReply(), "Source 1/2  climate.txt")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Contains(t, m.renderReply(), "Source 2/2  annex.txt")
}

func TestEnter_ErrorsKeepSessionAlive(t *testing.T) {
	asker := &stubAsker{err: errors.New("embed query: quota")}
	m := sized(t, New(context.Background(), asker, ""))

	m, cmd := submit(t, m, "water?")
	next, quitCmd := m.Update(cmd())
	m = next.(Model)

	assert.Nil(t, quitCmd)
	assert.Equal(t, session.KindError, m.reply.Kind)
	assert.Equal(t, "Error: embed query: quota", m.status)

	asker.err = domain.ErrEmptyContext
	m, cmd = submit(t, m, "water again?")
	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.Equal(t, session.NoContext, m.status)
}

func TestEnter_IgnoredWhileBusy(t *testing.T) {
	asker := &stubAsker{}
	m := sized(t, New(context.Background(), asker, ""))
	m.busy = true

	_, cmd := submit(t, m, "second question")

	assert.Nil(t, cmd)
}

func TestCtrlCQuits(t *testing.T) {
	m := New(context.Background(), &stubAsker{}, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestHighlightBestSentence_KeepsUnterminatedTail(t *testing.T) {
	got := highlightBestSentence("Emissions fell. Water targets were met in every region", "water")

	assert.Contains(t, got, "Emissions fell.")
	assert.Contains(t, got, "Water targets were met in every region")
}

func TestRenderReply_ShowsWholePassageCutMidSentence(t *testing.T) {
	asker := &stubAsker{ans: service.Answer{
		Text: "Targets were met.",
		Sources: []domain.SearchResult{
			{Record: domain.Record{Source: "water.txt", Text: "Withdrawal fell by a third. Recycling now covers every arid site and the"}, Score: 0.7},
		},
	}}
	m := sized(t, New(context.Background(), asker, ""))

	m, cmd := submit(t, m, "recycling sites")
	next, _ := m.Update(cmd())
	m = next.(Model)

	out := m.renderReply()
	assert.Contains(t, out, "Withdrawal fell by a third.")
	assert.Contains(t, out, "Recycling now covers every arid site and the")
}
