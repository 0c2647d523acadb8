package model

import (
	"context"

	"ochat/ollama"
)

// Provider abstracts the inference backend (Ollama or an OpenAI-compatible server).
//
// Defined here rather than in the provider package so model can depend on it
// without importing implementations.
type Provider interface {
	// Generate runs a single-shot completion against model.
	Generate(ctx context.Context, model, prompt string) (string, error)

	// Chat sends the full message list in one non-streaming request.
	Chat(ctx context.Context, model string, messages []Message) (string, error)

	// ListModels returns the models installed on the backend.
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)

	// Ping checks if the backend is reachable.
	Ping(ctx context.Context) error

	// Name identifies the backend type for display ("ollama", "openai").
	Name() string
}
