package config

const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"

	ThemeSystem = "system"
	ThemeDark   = "dark"
	ThemeLight  = "light"
)

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		DataDirectory: "~/.local/share/ochat",
		Backend: BackendConfig{
			Type:           BackendOllama,
			TimeoutSeconds: 300,
		},
		Session: SessionConfig{
			DefaultModel: "llama3.1",
			DefaultMode:  "generate",
		},
		UI: UIConfig{
			Theme:           ThemeSystem,
			StatsIntervalMs: 1000,
		},
	}
}

func GenerateUserConfigTemplate() string {
	return `# ochat Configuration
# Location: ~/.config/ochat/config.toml
# This file uses TOML format: https://toml.io

# Directory for the debug log and keybindings.toml
data_directory = "~/.local/share/ochat"

[backend]
# "ollama" or "openai" (any OpenAI-compatible server: LM Studio, llama.cpp, vLLM)
type = "ollama"

# Server URL. Leave commented out to use the default for the backend type:
#   ollama: http://localhost:11434
#   openai: http://localhost:1234/v1
# host = "http://localhost:11434"

# Only needed by servers that check it
api_key = ""

# Give up on a single request after this many seconds
timeout_seconds = 300

[session]
# Catalog key selected at startup (see [[models]] below)
default_model = "llama3.1"

# generate, chat or code
default_mode = "generate"

[ui]
# system, dark or light
theme = "system"

# CPU/GPU refresh period
stats_interval_ms = 1000

# Model catalog. Leave commented out to use the built-in list.
# Each entry maps a short key to the model name the backend expects.
#
# [[models]]
# key = "llama3.1_70b"
# name = "llama3.1:70b"
#
# [[models]]
# key = "codellama"
# name = "codellama"
`
}
