// Package textsplit holds the sentence splitter shared by the sentence
// chunker, the summarizer and the TUI passage view.
package textsplit

import (
	"regexp"
	"strings"
)

var terminated = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Sentences splits text after runs of '.', '!' or '?'. Text after the last
// terminator is kept as a final sentence. Results are trimmed and never blank.
func Sentences(text string) []string {
	var out []string
	last := 0
	for _, loc := range terminated.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[last:loc[1]]); s != "" {
			out = append(out, s)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		out = append(out, rest)
	}
	return out
}
