package model

import (
	"ochat/ollama"
	"ochat/sysstat"
)

// ResponseMsg carries a finished backend call back to the UI loop.
type ResponseMsg struct {
	Response Response
}

type StatsTickMsg struct{}

type StatsMsg struct {
	Usage sysstat.Usage
	Err   error
}

type BackendStatusMsg struct {
	Online bool
	Err    error
}

type InstalledModelsMsg struct {
	Models []ollama.ModelInfo
	Err    error
}

type ClipboardMsg struct {
	Err error
}
