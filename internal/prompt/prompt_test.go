package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	got := Build("Passage one\n---\nPassage two", "What is Scope 3?")

	assert.Equal(t,
		"You are an ESG assistant. Use the following ESG context to answer the question.\n\n"+
			"Context:\nPassage one\n---\nPassage two\n\n"+
			"Question: What is Scope 3?\nAnswer:",
		got)
}

func TestBuild_PlaceholdersInInputAreNotExpanded(t *testing.T) {
	got := Build("mentions {query}", "q")
	assert.Contains(t, got, "Context:\nmentions {query}\n")
}
