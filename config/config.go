package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

type BackendConfig struct {
	Type           string `toml:"type"`
	Host           string `toml:"host"`
	APIKey         string `toml:"api_key,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type SessionConfig struct {
	DefaultModel string `toml:"default_model"`
	DefaultMode  string `toml:"default_mode"`
}

type UIConfig struct {
	Theme           string `toml:"theme"`
	StatsIntervalMs int    `toml:"stats_interval_ms"`
}

// UserConfig mirrors config.toml on disk.
type UserConfig struct {
	DataDirectory string         `toml:"data_directory"`
	Backend       BackendConfig  `toml:"backend"`
	Session       SessionConfig  `toml:"session"`
	UI            UIConfig       `toml:"ui"`
	Models        []CatalogEntry `toml:"models,omitempty"`
}

// Config is the resolved runtime configuration after defaults, file and env overrides.
type Config struct {
	DataDirectory  string
	BackendType    string
	BackendHost    string
	APIKey         string
	RequestTimeout time.Duration
	DefaultModel   string
	DefaultMode    string
	Theme          string
	StatsInterval  time.Duration
	Catalog        *Catalog
	Keybindings    *KeyBindingsConfig
}

var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("OCHAT_HOST"); host != "" {
		c.BackendHost = host
	}
	if model := os.Getenv("OCHAT_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if mode := os.Getenv("OCHAT_MODE"); mode != "" {
		c.DefaultMode = mode
	}
	if backend := os.Getenv("OCHAT_BACKEND"); backend != "" {
		c.BackendType = backend
	}
	if key := os.Getenv("OCHAT_API_KEY"); key != "" {
		c.APIKey = key
	}
}

func CheckDebug() bool {
	debug := os.Getenv("OCHAT_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: prompts and responses end up in here
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (OCHAT_DEBUG=%s) ===", os.Getenv("OCHAT_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

// Validate reports the first configuration problem that would make the app unusable.
func (c *Config) Validate() error {
	switch c.BackendType {
	case BackendOllama, BackendOpenAI:
	default:
		return fmt.Errorf("unknown backend type %q (expected %q or %q)", c.BackendType, BackendOllama, BackendOpenAI)
	}
	if !c.Catalog.Contains(c.DefaultModel) {
		return fmt.Errorf("default model %q is not in the model catalog", c.DefaultModel)
	}
	switch c.DefaultMode {
	case "generate", "chat", "code":
	default:
		return fmt.Errorf("unknown default mode %q (expected generate, chat or code)", c.DefaultMode)
	}
	switch c.Theme {
	case ThemeSystem, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unknown theme %q (expected system, dark or light)", c.Theme)
	}
	return nil
}

// FromUserConfig resolves a decoded config file into a runtime Config.
func FromUserConfig(userCfg *UserConfig) *Config {
	defaults := DefaultUserConfig()

	cfg := &Config{
		DataDirectory: userCfg.DataDirectory,
		BackendType:   userCfg.Backend.Type,
		BackendHost:   userCfg.Backend.Host,
		APIKey:        userCfg.Backend.APIKey,
		DefaultModel:  userCfg.Session.DefaultModel,
		DefaultMode:   userCfg.Session.DefaultMode,
		Theme:         userCfg.UI.Theme,
	}

	if cfg.DataDirectory == "" {
		cfg.DataDirectory = defaults.DataDirectory
	}
	if cfg.BackendType == "" {
		cfg.BackendType = defaults.Backend.Type
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = defaults.Session.DefaultModel
	}
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = defaults.Session.DefaultMode
	}
	if cfg.Theme == "" {
		cfg.Theme = defaults.UI.Theme
	}

	timeout := userCfg.Backend.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaults.Backend.TimeoutSeconds
	}
	cfg.RequestTimeout = time.Duration(timeout) * time.Second

	interval := userCfg.UI.StatsIntervalMs
	if interval <= 0 {
		interval = defaults.UI.StatsIntervalMs
	}
	cfg.StatsInterval = time.Duration(interval) * time.Millisecond

	if len(userCfg.Models) > 0 {
		cfg.Catalog = NewCatalog(userCfg.Models)
	} else {
		cfg.Catalog = DefaultCatalog()
	}

	return cfg
}

func Load() (*Config, error) {
	userCfg, err := LoadUserConfig(GetConfigFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := FromUserConfig(userCfg)
	cfg.applyEnvOverrides()

	if cfg.BackendHost == "" {
		cfg.BackendHost = DefaultHost(cfg.BackendType)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	kb, err := LoadKeybindings(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	cfg.Keybindings = kb

	return cfg, nil
}

// DefaultHost returns the conventional local address for a backend type.
func DefaultHost(backendType string) string {
	if backendType == BackendOpenAI {
		return "http://localhost:1234/v1"
	}
	return "http://localhost:11434"
}
