package provider

import "testing"

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantName    string
		expectError bool
	}{
		{
			name:     "ollama provider with defaults",
			config:   Config{Type: ProviderTypeOllama},
			wantName: "ollama",
		},
		{
			name:     "ollama provider with custom host",
			config:   Config{Type: ProviderTypeOllama, BaseURL: "http://gpu-box:11434"},
			wantName: "ollama",
		},
		{
			name:     "openai-compatible provider without key",
			config:   Config{Type: ProviderTypeOpenAI, BaseURL: "http://localhost:1234/v1"},
			wantName: "openai",
		},
		{
			name:        "ollama provider with invalid host",
			config:      Config{Type: ProviderTypeOllama, BaseURL: "localhost"},
			expectError: true,
		},
		{
			name:        "unknown provider type",
			config:      Config{Type: ProviderType("unknown")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name: got %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}
