package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ollama/ollama/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClientWithHTTP(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("NewClientWithHTTP: %v", err)
	}
	return c
}

func TestGenerate(t *testing.T) {
	var got api.GenerateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.GenerateResponse{Model: got.Model, Response: "hello there", Done: true})
	})

	resp, err := c.Generate(context.Background(), "llama3.1:70b", "hi\nthere")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp != "hello there" {
		t.Errorf("response: got %q", resp)
	}
	if got.Model != "llama3.1:70b" || got.Prompt != "hi\nthere" {
		t.Errorf("request: got model=%q prompt=%q", got.Model, got.Prompt)
	}
	if got.Stream == nil || *got.Stream {
		t.Error("generate request must disable streaming")
	}
}

func TestChat(t *testing.T) {
	var got api.ChatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.ChatResponse{
			Model:   got.Model,
			Message: api.Message{Role: "assistant", Content: "b"},
			Done:    true,
		})
	})

	msgs := []api.Message{{Role: "user", Content: "a"}}
	resp, err := c.Chat(context.Background(), "mistral", msgs)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp != "b" {
		t.Errorf("response: got %q, want %q", resp, "b")
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "a" {
		t.Errorf("messages not forwarded verbatim: %+v", got.Messages)
	}
}

func TestGenerateServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model 'nope' not found"}`))
	})

	resp, err := c.Generate(context.Background(), "nope", "hi")
	if err == nil {
		t.Fatal("expected error for missing model")
	}
	if resp != "" {
		t.Errorf("response on error: got %q, want empty", resp)
	}
}

func TestListModels(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.ListResponse{Models: []api.ListModelResponse{
			{Name: "llama3.1:latest", Size: 4_700_000_000},
			{Name: "phi3:medium", Size: 7_900_000_000},
		}})
	})

	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 2 || models[1].Name != "phi3:medium" {
		t.Errorf("models: got %+v", models)
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	if _, err := NewClient("localhost"); err == nil {
		t.Error("expected error for URL without scheme")
	}
}

func TestIsInstalled(t *testing.T) {
	installed := []ModelInfo{{Name: "llama3.1:latest"}, {Name: "phi3:medium"}}

	tests := []struct {
		name string
		want bool
	}{
		{"llama3.1", true},
		{"llama3.1:latest", true},
		{"phi3:medium", true},
		{"phi3", false},
		{"llama3.1:70b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInstalled(installed, tt.name); got != tt.want {
				t.Errorf("IsInstalled(%q): got %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
