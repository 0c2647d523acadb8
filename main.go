package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ochat/config"
	"ochat/provider"
	"ochat/sysstat"
	"ochat/ui"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		showStartupError("Configuration Error", fmt.Sprintf("%v\n\nFix %s and start ochat again.", err, config.GetConfigFilePath()))
		os.Exit(0)
	}

	config.InitDebugLog(cfg.DataDir())
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Main] ochat %s backend=%s host=%s model=%s mode=%s", Version, cfg.BackendType, cfg.BackendHost, cfg.DefaultModel, cfg.DefaultMode)
	}

	if ok, warning := cfg.Keybindings.Validate(); !ok {
		showStartupError("Keybinding Error", warning)
		os.Exit(0)
	} else if warning != "" && config.DebugLog != nil {
		config.DebugLog.Printf("[Main] %s", warning)
	}

	backend, err := provider.NewProvider(provider.ConfigFromApp(cfg))
	if err != nil {
		showStartupError("Backend Error", err.Error())
		os.Exit(0)
	}

	sampler := sysstat.NewHostSampler()

	p := tea.NewProgram(
		ui.NewAppView(cfg, backend, sampler, Version),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// showStartupError blocks on a standalone modal until the user dismisses it.
func showStartupError(title, message string) {
	p := tea.NewProgram(
		ui.NewErrorModal(title, message),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
	}
}
