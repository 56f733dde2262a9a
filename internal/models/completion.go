package models

// CompletionRequest is the JSON body sent to the completion endpoint
type CompletionRequest struct {
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

// CompletionResponse is the subset of the completion endpoint response we consume
type CompletionResponse struct {
	ID      string             `json:"id,omitempty"`
	Model   string             `json:"model,omitempty"`
	Choices []CompletionChoice `json:"choices"`
}

type CompletionChoice struct {
	Index        int     `json:"index"`
	Text         *string `json:"text"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// FinishReasonLength is reported when the output hit the token budget
const FinishReasonLength = "length"
