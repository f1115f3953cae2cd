package domain

import "errors"

var (
	ErrEmptyPrompt      = errors.New("prompt is required")
	ErrPromptTooLong    = errors.New("prompt is too long")
	ErrCompletionFailed = errors.New("completion request failed")
	ErrRateLimited      = errors.New("too many completion requests")
)
