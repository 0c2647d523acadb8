package testutil

import (
	"context"
	"sync"

	"ochat/model"
	"ochat/ollama"
)

// MockProvider implements model.Provider for testing and records every call.
type MockProvider struct {
	GenerateFunc   func(ctx context.Context, modelName, prompt string) (string, error)
	ChatFunc       func(ctx context.Context, modelName string, messages []model.Message) (string, error)
	ListModelsFunc func(ctx context.Context) ([]ollama.ModelInfo, error)
	PingFunc       func(ctx context.Context) error

	mu            sync.Mutex
	generateCalls []GenerateCall
	chatCalls     []ChatCall
}

type GenerateCall struct {
	Model  string
	Prompt string
}

type ChatCall struct {
	Model    string
	Messages []model.Message
}

// NewMockProvider creates a mock whose calls succeed with fixed replies.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		GenerateFunc: func(ctx context.Context, modelName, prompt string) (string, error) {
			return "Mock response", nil
		},
		ChatFunc: func(ctx context.Context, modelName string, messages []model.Message) (string, error) {
			return "Mock chat response", nil
		},
		ListModelsFunc: func(ctx context.Context) ([]ollama.ModelInfo, error) {
			return []ollama.ModelInfo{
				{Name: "llama3.1:latest", Size: 1000},
				{Name: "codellama:latest", Size: 2000},
			}, nil
		},
		PingFunc: func(ctx context.Context) error {
			return nil
		},
	}
}

// NewFailingProvider creates a mock whose generate and chat calls return err.
func NewFailingProvider(err error) *MockProvider {
	m := NewMockProvider()
	m.GenerateFunc = func(ctx context.Context, modelName, prompt string) (string, error) {
		return "partial output that must be discarded", err
	}
	m.ChatFunc = func(ctx context.Context, modelName string, messages []model.Message) (string, error) {
		return "", err
	}
	return m
}

func (m *MockProvider) Generate(ctx context.Context, modelName, prompt string) (string, error) {
	m.mu.Lock()
	m.generateCalls = append(m.generateCalls, GenerateCall{Model: modelName, Prompt: prompt})
	m.mu.Unlock()
	return m.GenerateFunc(ctx, modelName, prompt)
}

func (m *MockProvider) Chat(ctx context.Context, modelName string, messages []model.Message) (string, error) {
	copied := make([]model.Message, len(messages))
	copy(copied, messages)

	m.mu.Lock()
	m.chatCalls = append(m.chatCalls, ChatCall{Model: modelName, Messages: copied})
	m.mu.Unlock()
	return m.ChatFunc(ctx, modelName, messages)
}

func (m *MockProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	return m.ListModelsFunc(ctx)
}

func (m *MockProvider) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) GenerateCalls() []GenerateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GenerateCall, len(m.generateCalls))
	copy(out, m.generateCalls)
	return out
}

func (m *MockProvider) ChatCalls() []ChatCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ChatCall, len(m.chatCalls))
	copy(out, m.chatCalls)
	return out
}

// Calls returns the total number of backend requests made.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.generateCalls) + len(m.chatCalls)
}
