package testutil

import (
	"time"

	"ochat/config"
)

// TestConfig returns a validated config with the default catalog and no files on disk.
func TestConfig() *config.Config {
	cfg := config.FromUserConfig(&config.UserConfig{})
	cfg.BackendHost = config.DefaultHost(cfg.BackendType)
	cfg.Keybindings = config.DefaultKeybindings()
	cfg.StatsInterval = time.Second
	return cfg
}

// TestConfigWithMode returns TestConfig with the given default mode.
func TestConfigWithMode(mode string) *config.Config {
	cfg := TestConfig()
	cfg.DefaultMode = mode
	return cfg
}
