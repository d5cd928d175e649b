// Package llm holds the prompt construction shared by the answer-generation
// adapters.
package llm

import (
	"fmt"
	"strings"
)

// SystemPrompt frames the model as a course tutor that stays grounded in the
// supplied excerpts.
const SystemPrompt = "You are a helpful course tutor. Answer the student's question using only the " +
	"provided course material excerpts. If the excerpts do not contain the answer, say so " +
	"instead of guessing. Be concise and cite which excerpt supports each claim when possible."

// UserPrompt renders the retrieved passages and the question into a single
// user message. Passages are numbered so the model can reference them.
func UserPrompt(question string, passages []string) string {
	var sb strings.Builder
	sb.WriteString("Course material excerpts:\n\n")
	for i, passage := range passages {
		fmt.Fprintf(&sb, "[Excerpt %d]\n%s\n\n", i+1, passage)
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)
	return sb.String()
}
