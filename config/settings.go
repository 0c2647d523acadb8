package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LoadUserConfig reads config.toml, writing the commented template first if it is missing.
func LoadUserConfig(configPath string) (*UserConfig, error) {
	cfg := DefaultUserConfig()

	if !FileExists(configPath) {
		if err := CreateDefaultUserConfig(configPath); err != nil {
			return nil, fmt.Errorf("failed to create user config: %w", err)
		}
		return cfg, nil
	}

	// Decode over the defaults so missing keys keep their default values
	_, err := toml.DecodeFile(configPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return cfg, nil
}

func CreateDefaultUserConfig(configPath string) error {
	if err := EnsureDir(filepath.Dir(configPath)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if FileExists(configPath) {
		return nil
	}

	content := GenerateUserConfigTemplate()
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}
