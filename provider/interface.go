// Package provider implements model.Provider for the supported inference backends.
//
// Two backends are supported:
//   - OllamaProvider talks to a local Ollama server through its official Go client.
//   - OpenAIProvider talks to any OpenAI-compatible server (LM Studio, llama.cpp
//     server, vLLM) through the official OpenAI Go SDK.
//
// Both are non-streaming: a call returns only once the whole response is known.
// The UI runs them off its event loop and cancels them through the context.
//
// # Usage
//
//	p, err := provider.NewProvider(provider.Config{
//	    Type:    provider.ProviderTypeOllama,
//	    BaseURL: "http://localhost:11434",
//	})
//	if err != nil {
//	    // handle error
//	}
//	text, err := p.Generate(ctx, "llama3.1:70b", "Why is the sky blue?")
package provider

import "ochat/config"

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOllama ProviderType = config.BackendOllama
	ProviderTypeOpenAI ProviderType = config.BackendOpenAI
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	APIKey  string // OpenAI-compatible servers only
}

// ConfigFromApp maps the application config onto a provider Config.
func ConfigFromApp(cfg *config.Config) Config {
	return Config{
		Type:    ProviderType(cfg.BackendType),
		BaseURL: cfg.BackendHost,
		APIKey:  cfg.APIKey,
	}
}
