package domain

import "time"

// SuggestionRequest is one attempt to fetch a continuation for a context fragment.
// A newer request supersedes an older one; requests are never mutated.
type SuggestionRequest struct {
	ID       string    `json:"id"`
	Fragment string    `json:"fragment"`
	IssuedAt time.Time `json:"issued_at"`
}

// SuggestionState is what field bindings render.
type SuggestionState struct {
	Text      string `json:"text"`
	IsLoading bool   `json:"is_loading"`
	Visible   bool   `json:"visible"`
}

// Phase of a coordinator, derived from its state.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePending Phase = "pending"
	PhaseReady   Phase = "ready"
)

// EmptyState is the Idle state.
func EmptyState() SuggestionState {
	return SuggestionState{}
}

// LoadingState is the Pending state.
func LoadingState() SuggestionState {
	return SuggestionState{IsLoading: true, Visible: true}
}

// ReadyState builds the state for a settled response. An empty suggestion
// collapses to Idle, which is never visible.
func ReadyState(text string) SuggestionState {
	if text == "" {
		return EmptyState()
	}
	return SuggestionState{Text: text, Visible: true}
}

// Ready reports whether the suggestion can be accepted.
func (s SuggestionState) Ready() bool {
	return s.Visible && !s.IsLoading && s.Text != ""
}

func (s SuggestionState) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhasePending
	case s.Text != "":
		return PhaseReady
	default:
		return PhaseIdle
	}
}

// CompletionRequest is the wire body of POST /api/autocomplete.
type CompletionRequest struct {
	Prompt string `json:"prompt"`
}

// CompletionResponse is the success body of POST /api/autocomplete.
type CompletionResponse struct {
	Suggestion string `json:"suggestion"`
}
