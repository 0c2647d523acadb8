package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ochat/config"
)

var (
	ErrEmptyPrompt    = errors.New("prompt cannot be empty")
	ErrUnknownModel   = errors.New("unknown model")
	ErrRequestPending = errors.New("a request is already in progress")
	ErrStaleResponse  = errors.New("response belongs to a reset conversation")
)

// Request is an immutable snapshot of everything a backend call needs.
type Request struct {
	ID        int
	SessionID string
	Mode      Mode
	ModelKey  string
	ModelName string

	// Prompt is the trimmed user input that becomes the user turn.
	Prompt string

	// Combined is set for single-shot modes.
	Combined string

	// Messages is set for chat mode and already ends with the new user turn.
	Messages []Message
}

// Response is the outcome of a backend call. Content is "" whenever Err is set.
type Response struct {
	Request Request
	Content string
	Err     error
	Elapsed time.Duration
}

// Exchange is the pair of turns a committed response added to the conversation.
type Exchange struct {
	User  Message
	Reply Message
	Label string // display label for the reply, the backend model name
	Code  bool   // reply should be rendered with the code convention
	Err   error  // backend failure, already substituted by empty content
}

// Prepare validates prompt and builds a Request for the current mode without
// touching the conversation. On success the model is marked pending until Commit.
func (m *Model) Prepare(prompt string) (Request, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Request{}, ErrEmptyPrompt
	}
	if m.Pending {
		return Request{}, ErrRequestPending
	}

	name, ok := m.Config.Catalog.Lookup(m.ModelKey)
	if !ok {
		return Request{}, fmt.Errorf("%w: %q", ErrUnknownModel, m.ModelKey)
	}

	m.nextRequestID++
	req := Request{
		ID:        m.nextRequestID,
		SessionID: m.SessionID,
		Mode:      m.Mode,
		ModelKey:  m.ModelKey,
		ModelName: name,
		Prompt:    prompt,
	}

	if m.Mode.SingleShot() {
		req.Combined = m.Conversation.PromptText(prompt)
	} else {
		req.Messages = append(m.Conversation.Messages(), Message{Role: RoleUser, Content: prompt})
	}

	m.Pending = true

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Dispatch] Request %d prepared: mode=%s model=%s history=%d", req.ID, req.Mode, req.ModelName, m.Conversation.Len())
	}

	return req, nil
}

// Execute performs the backend call for req. It never touches session state and
// is safe to run off the UI loop. Failures yield empty content.
func Execute(ctx context.Context, p Provider, req Request) Response {
	start := time.Now()

	var content string
	var err error
	if p == nil {
		err = errors.New("no inference backend configured")
	} else if req.Mode.SingleShot() {
		content, err = p.Generate(ctx, req.ModelName, req.Combined)
	} else {
		content, err = p.Chat(ctx, req.ModelName, req.Messages)
	}

	if err != nil {
		content = ""
	}

	resp := Response{
		Request: req,
		Content: content,
		Err:     err,
		Elapsed: time.Since(start),
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Dispatch] Request %d finished in %v (chars=%d, err=%v)", req.ID, resp.Elapsed, len(content), err)
	}

	return resp
}

// Commit appends the user turn and the reply turn for resp. Responses for a
// conversation that has since been reset are dropped with ErrStaleResponse.
func (m *Model) Commit(resp Response) (Exchange, error) {
	if resp.Request.SessionID != m.SessionID {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Dispatch] Dropping stale response %d", resp.Request.ID)
		}
		return Exchange{}, ErrStaleResponse
	}

	m.Pending = false

	now := time.Now()
	user := Message{Role: RoleUser, Content: resp.Request.Prompt, Timestamp: now}
	reply := Message{Role: RoleAssistant, Content: resp.Content, Timestamp: now}

	m.Conversation.Append(user)
	m.Conversation.Append(reply)

	return Exchange{
		User:  user,
		Reply: reply,
		Label: resp.Request.ModelName,
		Code:  resp.Request.Mode == ModeCode,
		Err:   resp.Err,
	}, nil
}

// Submit runs Prepare, Execute and Commit in sequence on the calling goroutine.
func (m *Model) Submit(ctx context.Context, prompt string) (Exchange, error) {
	req, err := m.Prepare(prompt)
	if err != nil {
		return Exchange{}, err
	}
	return m.Commit(Execute(ctx, m.Provider, req))
}
