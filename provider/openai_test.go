package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ochat/model"
)

func TestOpenAIProviderImplementsInterface(t *testing.T) {
	var _ model.Provider = (*OpenAIProvider)(nil)
}

type openAIRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newOpenAITestServer(t *testing.T, got *openAIRequest, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":{"message":"model not loaded","type":"invalid_request_error"}}`))
			return
		}
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 0,
			"model": "` + got.Model + `",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "hello"},
				"finish_reason": "stop"
			}]
		}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIProviderGenerate(t *testing.T) {
	var got openAIRequest
	srv := newOpenAITestServer(t, &got, http.StatusOK)

	p, err := NewOpenAIProvider(srv.URL+"/v1", "")
	if err != nil {
		t.Fatal(err)
	}

	resp, err := p.Generate(context.Background(), "qwen2.5-coder", "hi\nthere")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp != "hello" {
		t.Errorf("response: got %q", resp)
	}
	if got.Model != "qwen2.5-coder" || len(got.Messages) != 1 || got.Messages[0].Content != "hi\nthere" {
		t.Errorf("request: got %+v", got)
	}
}

func TestOpenAIProviderChatError(t *testing.T) {
	var got openAIRequest
	srv := newOpenAITestServer(t, &got, http.StatusBadRequest)

	p, err := NewOpenAIProvider(srv.URL+"/v1", "k")
	if err != nil {
		t.Fatal(err)
	}

	resp, err := p.Chat(context.Background(), "m", []model.Message{{Role: model.RoleUser, Content: "a"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if resp != "" {
		t.Errorf("response on error: got %q, want empty", resp)
	}
}
