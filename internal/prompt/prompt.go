// Package prompt renders the question-answering prompt sent to the generator.
package prompt

import "strings"

const template = "You are an ESG assistant. Use the following ESG context to answer the question.\n\nContext:\n{context}\n\nQuestion: {query}\nAnswer:"

// Build fills the ESG assistant template with retrieved context and the question.
func Build(context, question string) string {
	r := strings.NewReplacer("{context}", context, "{query}", question)
	return r.Replace(template)
}
