package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ochat/config"
)

// Colors adapt to the active background; ApplyTheme flips lipgloss between them.
var (
	dimColor       = lipgloss.AdaptiveColor{Light: "8", Dark: "7"}
	accentColor    = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	successColor   = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	warningColor   = lipgloss.AdaptiveColor{Light: "3", Dark: "11"}
	dangerColor    = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	highlightColor = lipgloss.AdaptiveColor{Light: "5", Dark: "13"}
	bubbleColor    = lipgloss.AdaptiveColor{Light: "252", Dark: "236"}
	codeBgColor    = lipgloss.AdaptiveColor{Light: "255", Dark: "234"}

	UserStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	AssistantStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	// Prose bubble: shaded card, content reflowed to the bubble width
	ProseBubbleStyle = lipgloss.NewStyle().
				Background(bubbleColor).
				Padding(0, 1).
				MarginBottom(1)

	// Code bubble: framed, never reflowed
	CodeBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false).
			BorderForeground(dimColor).
			Background(codeBgColor).
			Padding(0, 1).
			MarginBottom(1)
)

// Theme is the cosmetic appearance setting. It never affects conversation data.
type Theme struct {
	Dark bool
}

// ResolveTheme turns the configured theme name into a concrete theme.
// "system" asks the terminal for its background colour.
func ResolveTheme(name string) Theme {
	switch name {
	case config.ThemeDark:
		return Theme{Dark: true}
	case config.ThemeLight:
		return Theme{Dark: false}
	default:
		return Theme{Dark: lipgloss.HasDarkBackground()}
	}
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	return Theme{Dark: !t.Dark}
}

func (t Theme) Name() string {
	if t.Dark {
		return config.ThemeDark
	}
	return config.ThemeLight
}

// ChromaStyle names the syntax-highlighting palette for code bubbles.
func (t Theme) ChromaStyle() string {
	if t.Dark {
		return "monokai"
	}
	return "github"
}

// ApplyTheme points every adaptive colour at the theme's background.
func ApplyTheme(t Theme) {
	lipgloss.SetHasDarkBackground(t.Dark)
}

// FormatFooter formats a footer string with alternating keys and descriptions.
// Usage: FormatFooter("↑/↓", "Navigate", "Enter", "Select", "Esc", "Close")
func FormatFooter(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	var result []string
	for i := 0; i < len(parts); i += 2 {
		if i+1 < len(parts) {
			result = append(result, parts[i]+" "+descStyle.Render(parts[i+1]))
		}
	}
	return strings.Join(result, "  ")
}
