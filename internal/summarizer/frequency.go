// Package summarizer builds the short corpus digest shown when a session starts.
package summarizer

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"esgrag/internal/textsplit"
)

const (
	DefaultMaxSentences = 3
	// sentences with fewer content words are headings or table fragments
	MinContentWords = 4
)

// FrequencySummarizer ranks sentences by how many of the corpus's most
// frequent content words they carry. Report boilerplate ("company", "year",
// "fiscal") counts as a stopword so it cannot dominate the digest.
type FrequencySummarizer struct {
	wordPattern *regexp.Regexp
	stopwords   map[string]struct{}
	minWords    int
}

func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{
		wordPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:   defaultStopwords(),
		minWords:    MinContentWords,
	}
}

type rankedSentence struct {
	idx   int
	score float64
}

// Summarize returns up to maxSentences sentences of text in their original
// order. Short fragments are only used when nothing longer exists.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	sentences := textsplit.Sentences(text)
	if len(sentences) == 0 {
		return "", nil
	}
	words := make([][]string, len(sentences))
	for i, sent := range sentences {
		words[i] = s.contentWords(sent)
	}
	weights := termWeights(words)

	candidates := make([]rankedSentence, 0, len(sentences))
	for i, w := range words {
		if len(w) >= s.minWords {
			candidates = append(candidates, rankedSentence{idx: i, score: sentenceScore(w, weights)})
		}
	}
	if len(candidates) == 0 {
		for i, w := range words {
			candidates = append(candidates, rankedSentence{idx: i, score: sentenceScore(w, weights)})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	if maxSentences > len(candidates) {
		maxSentences = len(candidates)
	}
	picked := make([]int, maxSentences)
	for i := range picked {
		picked[i] = candidates[i].idx
	}
	sort.Ints(picked)
	out := make([]string, len(picked))
	for i, idx := range picked {
		out[i] = sentences[idx]
	}
	return strings.Join(out, " "), nil
}

func (s *FrequencySummarizer) contentWords(sentence string) []string {
	all := s.wordPattern.FindAllString(strings.ToLower(sentence), -1)
	out := all[:0]
	for _, w := range all {
		if _, stop := s.stopwords[w]; !stop {
			out = append(out, w)
		}
	}
	return out
}

// termWeights maps each word to its frequency scaled into (0, 1].
func termWeights(words [][]string) map[string]float64 {
	weights := map[string]float64{}
	top := 0.0
	for _, ws := range words {
		for _, w := range ws {
			weights[w]++
			top = math.Max(top, weights[w])
		}
	}
	for w, v := range weights {
		weights[w] = v / top
	}
	return weights
}

// sentenceScore divides by sqrt(len) so long sentences are not favoured outright.
func sentenceScore(words []string, weights map[string]float64) float64 {
	if len(words) == 0 {
		return 0
	}
	total := 0.0
	for _, w := range words {
		total += weights[w]
	}
	return total / math.Sqrt(float64(len(words)))
}

func defaultStopwords() map[string]struct{} {
	general := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by",
		"with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its", "this", "that", "these",
		"those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about",
		"between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too",
		"very", "can", "will", "just", "should", "now", "we", "our", "us", "has", "have", "had", "also", "which",
		"all", "each", "not", "no", "more", "most", "other",
	}
	// words every sustainability report repeats regardless of topic
	boilerplate := []string{
		"company", "companies", "group", "report", "reports", "reported", "year", "years", "annual", "fiscal",
		"period", "page", "section", "table", "figure", "see", "including", "per", "cent", "percent",
	}
	m := make(map[string]struct{}, len(general)+len(boilerplate))
	for _, w := range general {
		m[w] = struct{}{}
	}
	for _, w := range boilerplate {
		m[w] = struct{}{}
	}
	return m
}
