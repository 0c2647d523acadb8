package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

type Client struct {
	client *api.Client
}

// ModelInfo describes a model installed on the backend.
type ModelInfo struct {
	Name string
	Size int64
}

func NewClient(baseURL string) (*Client, error) {
	return NewClientWithHTTP(baseURL, http.DefaultClient)
}

// NewClientWithHTTP lets callers supply their own transport (tests use httptest servers).
func NewClientWithHTTP(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid Ollama URL: %q needs a scheme and host", baseURL)
	}

	return &Client{
		client: api.NewClient(parsedURL, httpClient),
	}, nil
}

func noStream() *bool {
	b := false
	return &b
}

// Generate runs a single-shot completion and returns the full response text.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	req := &api.GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: noStream(),
	}

	var out strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", err
	}

	return out.String(), nil
}

// Chat sends the whole message list in one non-streaming request.
func (c *Client) Chat(ctx context.Context, model string, messages []api.Message) (string, error) {
	req := &api.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   noStream(),
	}

	var out strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		out.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}

	return out.String(), nil
}

func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	resp, err := c.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	models := make([]ModelInfo, len(resp.Models))
	for i, model := range resp.Models {
		models[i] = ModelInfo{
			Name: model.Name,
			Size: model.Size,
		}
	}

	return models, nil
}

func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := c.client.List(ctx)
	return err
}

// IsInstalled reports whether name matches an installed model.
// Ollama lists untagged pulls as "<name>:latest", so a bare name matches that tag too.
func IsInstalled(installed []ModelInfo, name string) bool {
	for _, m := range installed {
		if m.Name == name {
			return true
		}
		if !strings.Contains(name, ":") && m.Name == name+":latest" {
			return true
		}
	}
	return false
}
