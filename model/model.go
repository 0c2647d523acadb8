package model

import (
	"fmt"

	"github.com/google/uuid"

	"ochat/config"
	"ochat/ollama"
)

// Model holds the session state the UI drives: selected model and mode, the
// conversation, and whether a request is in flight. It is only touched from the
// UI loop; backend calls receive a Request snapshot instead.
type Model struct {
	Config   *config.Config
	Provider Provider

	SessionID    string
	ModelKey     string
	Mode         Mode
	Conversation *Conversation

	// Runtime state (not UI)
	Pending         bool
	InstalledModels []ollama.ModelInfo
	Quitting        bool

	Version string

	nextRequestID int
}

// NewModel creates session state from configuration. Config must already be validated.
func NewModel(cfg *config.Config, provider Provider, version string) *Model {
	mode, err := ParseMode(cfg.DefaultMode)
	if err != nil {
		mode = ModeGenerate
	}

	m := &Model{
		Config:       cfg,
		Provider:     provider,
		SessionID:    uuid.NewString(),
		ModelKey:     cfg.DefaultModel,
		Mode:         mode,
		Conversation: NewConversation(),
		Version:      version,
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Model] NewModel: session=%s model=%s mode=%s", m.SessionID, m.ModelKey, m.Mode)
	}

	return m
}

// SetModelKey selects a catalog entry.
func (m *Model) SetModelKey(key string) error {
	if !m.Config.Catalog.Contains(key) {
		return fmt.Errorf("%w: %q", ErrUnknownModel, key)
	}
	m.ModelKey = key
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Model] Model set to %s", key)
	}
	return nil
}

func (m *Model) SetMode(mode Mode) {
	m.Mode = mode
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Model] Mode set to %s", mode)
	}
}

// ModelName resolves the selected key to the backend model identifier.
func (m *Model) ModelName() string {
	name, ok := m.Config.Catalog.Lookup(m.ModelKey)
	if !ok {
		return m.ModelKey
	}
	return name
}

// ResetContext empties the conversation and starts a new session id, so any
// response still in flight is recognised as stale when it lands.
func (m *Model) ResetContext() {
	m.Conversation.Reset()
	m.Pending = false
	m.SessionID = uuid.NewString()

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Model] Context reset, new session=%s", m.SessionID)
	}
}

// ProviderName names the backend for the status bar.
func (m *Model) ProviderName() string {
	if m.Provider == nil {
		return "no backend"
	}
	return m.Provider.Name()
}
