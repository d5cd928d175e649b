package llm

import (
	"strings"
	"testing"
)

func TestUserPrompt(t *testing.T) {
	prompt := UserPrompt("What is covered on the midterm?", []string{
		"The midterm covers chapters 1 through 5.",
		"Office hours are on Thursdays.",
	})

	if !strings.Contains(prompt, "[Excerpt 1]") || !strings.Contains(prompt, "[Excerpt 2]") {
		t.Error("expected numbered excerpts")
	}
	if !strings.Contains(prompt, "chapters 1 through 5") {
		t.Error("expected passage content in prompt")
	}
	if !strings.HasSuffix(prompt, "Question: What is covered on the midterm?") {
		t.Errorf("expected prompt to end with the question, got %q", prompt)
	}
}
