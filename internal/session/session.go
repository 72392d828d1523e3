// Package session decides what one line of user input means and how the
// outcome of a question is presented. The TUI and the plain line loop share it.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"esgrag/internal/domain"
	"esgrag/internal/service"
)

const (
	Prompt      = "Your question: "
	GoodbyeText = "Exiting ESG Assistant. Goodbye!"
	NoContext   = "No relevant context found for that query."
)

// Asker is the part of the RAG service a session needs.
type Asker interface {
	Ask(ctx context.Context, question string) (service.Answer, error)
}

// Kind classifies a Reply.
type Kind int

const (
	KindSkip Kind = iota
	KindQuit
	KindAnswer
	KindInfo
	KindError
)

// Reply is the outcome of one turn.
type Reply struct {
	Kind   Kind
	Text   string
	Answer service.Answer
}

// IsExit reports whether line asks to end the session.
func IsExit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit":
		return true
	}
	return false
}

// Turn handles one line of input. Errors never end the session; they come
// back as KindInfo or KindError replies.
func Turn(ctx context.Context, asker Asker, line string) Reply {
	q := strings.TrimSpace(line)
	if IsExit(q) {
		return Reply{Kind: KindQuit, Text: GoodbyeText}
	}
	if q == "" {
		return Reply{Kind: KindSkip}
	}
	ans, err := asker.Ask(ctx, q)
	switch {
	case errors.Is(err, domain.ErrEmptyContext):
		return Reply{Kind: KindInfo, Text: NoContext, Answer: ans}
	case err != nil:
		return Reply{Kind: KindError, Text: "Error: " + err.Error(), Answer: ans}
	}
	text := ans.Text
	if text == "" {
		text = ans.Context
	}
	return Reply{Kind: KindAnswer, Text: text, Answer: ans}
}

// RunPlain reads questions line by line from in until exit, quit or EOF.
func RunPlain(ctx context.Context, in io.Reader, out io.Writer, asker Asker) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, Prompt)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		r := Turn(ctx, asker, sc.Text())
		switch r.Kind {
		case KindSkip:
			continue
		case KindQuit:
			fmt.Fprintln(out, r.Text)
			return nil
		case KindAnswer:
			fmt.Fprintf(out, "\nAnswer: %s\n\n", r.Text)
		default:
			fmt.Fprintf(out, "%s\n\n", r.Text)
		}
	}
}
