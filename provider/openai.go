package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"ochat/model"
	"ochat/ollama"
)

// OpenAIProvider implements model.Provider for OpenAI-compatible servers.
// Local servers typically ignore the API key, so a placeholder is sent when none is set.
type OpenAIProvider struct {
	client  openai.Client
	baseURL string
}

// NewOpenAIProvider creates a provider for an OpenAI-compatible endpoint.
// An empty baseURL defaults to LM Studio's "http://localhost:1234/v1".
func NewOpenAIProvider(baseURL, apiKey string, opts ...option.RequestOption) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = "http://localhost:1234/v1"
	}
	if apiKey == "" {
		apiKey = "local"
	}

	// Failures are reported once, never retried
	clientOpts := append([]option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &OpenAIProvider{
		client:  openai.NewClient(clientOpts...),
		baseURL: baseURL,
	}, nil
}

// Generate has no dedicated endpoint on most local servers, so it is sent as a
// chat completion holding a single user message.
func (p *OpenAIProvider) Generate(ctx context.Context, modelName, prompt string) (string, error) {
	return p.complete(ctx, modelName, []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)})
}

func (p *OpenAIProvider) Chat(ctx context.Context, modelName string, messages []model.Message) (string, error) {
	return p.complete(ctx, modelName, ConvertToOpenAIMessages(messages))
}

func (p *OpenAIProvider) complete(ctx context.Context, modelName string, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(modelName),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI-compatible request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("OpenAI-compatible server returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	page, err := p.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	result := make([]ollama.ModelInfo, 0, len(page.Data))
	for _, m := range page.Data {
		result = append(result, ollama.ModelInfo{Name: m.ID})
	}
	return result, nil
}

func (p *OpenAIProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := p.client.Models.List(ctx); err != nil {
		return fmt.Errorf("OpenAI-compatible ping failed: %w", err)
	}
	return nil
}

func (p *OpenAIProvider) Name() string {
	return string(ProviderTypeOpenAI)
}
