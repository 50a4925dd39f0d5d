// Package provider abstracts hosted LLM completion providers using the Eino
// framework.
package provider

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Provider represents a completion provider. The pipeline treats providers
// as untrusted: structural claims in their output are validated or
// overwritten upstream.
type Provider interface {
	// ID returns the provider identifier.
	ID() string

	// Name returns the human-readable provider name.
	Name() string

	// Complete generates a single whole response (JSON mode).
	Complete(ctx context.Context, req *CompletionRequest) (*schema.Message, error)

	// CreateCompletion creates a streaming completion.
	CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionStream, error)
}

// CompletionRequest represents one prompt pair sent to a provider.
type CompletionRequest struct {
	Messages    []*schema.Message `json:"messages"`
	MaxTokens   int               `json:"maxTokens,omitempty"`
	Temperature float64           `json:"temperature,omitempty"`
}

// NewPromptPair builds the canonical system + user message slice.
func NewPromptPair(systemPrompt, userPrompt string) []*schema.Message {
	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	}
}

// CompletionStream wraps an Eino stream reader.
type CompletionStream struct {
	reader *schema.StreamReader[*schema.Message]
}

// NewCompletionStream creates a new completion stream.
func NewCompletionStream(reader *schema.StreamReader[*schema.Message]) *CompletionStream {
	return &CompletionStream{reader: reader}
}

// Recv receives the next message chunk from the stream.
func (s *CompletionStream) Recv() (*schema.Message, error) {
	return s.reader.Recv()
}

// Close closes the stream.
func (s *CompletionStream) Close() {
	s.reader.Close()
}
