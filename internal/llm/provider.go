package llm

import (
	"context"
	"encoding/json"
)

// Provider is the transport abstraction over a generative model.
// Callers send a Request and receive structured JSON back.
type Provider interface {
	// Generate sends a prompt to the model and returns its response.
	// When req.Schema is set, the provider asks for JSON conforming to it
	// and validates the result before returning.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system instruction.
	System string

	// Messages is the conversation. Question generation is single-turn,
	// so this usually holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When nil, Response.Content holds the raw text.
	Schema *Schema

	// MaxTokens caps the response length. Zero leaves it to the provider.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 2.0. Zero means provider default.
	Temperature float64
}

// Message is a single conversation turn.
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

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema, e.g. "aptitude-question". Used as the
	// OpenAI schema name and as the compiled-schema cache key.
	Name string

	// Description is sent to providers that accept one.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any

	// Strict requests strict schema adherence where the provider supports
	// it. Strict mode forbids optional properties on OpenAI, so schemas with
	// optional objects leave it off.
	Strict bool
}

// Response holds the model output.
type Response struct {
	// Content is the generated output. With a Schema this is the validated
	// JSON document.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
