package model

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"ochat/config"
	"ochat/sysstat"
)

// SendRequest runs req against the provider off the UI loop.
// The caller owns ctx and cancels it to abort the request.
func (m *Model) SendRequest(ctx context.Context, req Request) tea.Cmd {
	provider := m.Provider
	return func() tea.Msg {
		return ResponseMsg{Response: Execute(ctx, provider, req)}
	}
}

// PingProvider checks reachability for the status bar. Startup never waits on it.
func (m *Model) PingProvider() tea.Cmd {
	provider := m.Provider
	return func() tea.Msg {
		if provider == nil {
			return BackendStatusMsg{Online: false}
		}
		err := provider.Ping(context.Background())
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[Model] Backend ping failed: %v", err)
		}
		return BackendStatusMsg{Online: err == nil, Err: err}
	}
}

// FetchInstalledModels asks the backend which catalog models are present locally.
func (m *Model) FetchInstalledModels() tea.Cmd {
	provider := m.Provider
	return func() tea.Msg {
		if provider == nil {
			return InstalledModelsMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		models, err := provider.ListModels(ctx)
		return InstalledModelsMsg{Models: models, Err: err}
	}
}

// ScheduleStats arms the next resource-usage refresh.
func ScheduleStats(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return StatsTickMsg{}
	})
}

// SampleStats reads CPU and GPU usage off the UI loop.
func SampleStats(sampler sysstat.Sampler) tea.Cmd {
	return func() tea.Msg {
		if sampler == nil {
			return StatsMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		usage, err := sysstat.Sample(ctx, sampler)
		return StatsMsg{Usage: usage, Err: err}
	}
}

// CopyLastResponse puts the most recent assistant reply on the system clipboard.
func (m *Model) CopyLastResponse() tea.Cmd {
	last, ok := m.Conversation.LastAssistant()
	if !ok {
		return nil
	}
	content := last.Content
	return func() tea.Msg {
		return ClipboardMsg{Err: clipboard.WriteAll(content)}
	}
}
