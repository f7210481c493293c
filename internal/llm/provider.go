package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
// Consumers send a prompt and receive the model's candidate replies as text.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its candidates.
	// A nil error means the endpoint answered successfully; it does not
	// guarantee that any candidate carries text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is an optional system prompt. Question generation puts the
	// whole instruction set into a single user message and leaves it empty.
	System string

	// Messages is the conversation. Single-turn generation sends exactly
	// one user message.
	Messages []Message

	// JSONOutput asks the provider to prefer a JSON reply when it has a
	// native switch for it. Replies are still treated as free text.
	JSONOutput bool

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default in place.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Zero leaves the provider default in place.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds a single-turn request carrying prompt as the user message.
func UserPrompt(prompt string) Request {
	return Request{
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}

// Response holds the LLM's output.
type Response struct {
	// Candidates are the alternative replies, in provider order.
	// May be empty when the provider filtered or withheld output.
	Candidates []Candidate

	// Raw is the provider payload serialized as JSON, kept for diagnostics.
	Raw json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string
}

// Candidate is one generated reply.
type Candidate struct {
	// Text is the concatenated text content. Empty when the candidate
	// carried no text parts.
	Text string

	// FinishReason is normalized to: "end", "max_tokens", "filtered", "other".
	FinishReason string
}

// FirstText returns the text of the first candidate and whether it is
// non-empty. Later candidates are never consulted.
func (r *Response) FirstText() (string, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return "", false
	}
	text := r.Candidates[0].Text
	return text, text != ""
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
