package service

import "fmt"

// completionTemplate asks the model to continue Portuguese text from where
// it ends rather than rewrite it.
const completionTemplate = `You are an intelligent autocomplete engine for Portuguese text. Your job is to CONTINUE the text from where it ends, not replace it.

Given this partial text: %q

Rules:
1. Only provide the CONTINUATION from where the text ends
2. Do NOT repeat any part of the input text
3. Continue naturally in Portuguese
4. Keep it concise (1-5 words maximum)
5. If the text ends mid-word, complete just that word
6. If the text ends with a complete word, suggest the next logical words

Continue from here:`

// BuildCompletionPrompt wraps a context fragment in the continuation
// instructions.
func BuildCompletionPrompt(fragment string) string {
	return fmt.Sprintf(completionTemplate, fragment)
}
