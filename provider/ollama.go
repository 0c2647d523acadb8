package provider

import (
	"context"
	"fmt"

	"ochat/model"
	"ochat/ollama"
)

// OllamaProvider wraps ollama.Client to implement model.Provider.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a new Ollama provider instance.
// An empty baseURL defaults to "http://localhost:11434".
func NewOllamaProvider(baseURL string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{
		client: client,
	}, nil
}

// NewOllamaProviderWithClient wraps an existing client.
func NewOllamaProviderWithClient(client *ollama.Client) *OllamaProvider {
	return &OllamaProvider{client: client}
}

func (p *OllamaProvider) Generate(ctx context.Context, modelName, prompt string) (string, error) {
	return p.client.Generate(ctx, modelName, prompt)
}

func (p *OllamaProvider) Chat(ctx context.Context, modelName string, messages []model.Message) (string, error) {
	return p.client.Chat(ctx, modelName, ConvertToOllamaMessages(messages))
}

func (p *OllamaProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	return p.client.ListModels(ctx)
}

func (p *OllamaProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}

func (p *OllamaProvider) Name() string {
	return string(ProviderTypeOllama)
}
