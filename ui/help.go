package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderHelpModal(width, height int) string {
	kb := a.dataModel.Config.Keybindings

	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("ochat " + a.dataModel.Version + " - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	globalActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Global Actions"),
		fmt.Sprintf("• %-13s Select model", kb.DisplayActionKey("model_selector")),
		fmt.Sprintf("• %-13s Select mode", kb.DisplayActionKey("mode_selector")),
		fmt.Sprintf("• %-13s Reset context", kb.DisplayActionKey("reset_context")),
		fmt.Sprintf("• %-13s Dark/light theme", kb.DisplayActionKey("toggle_theme")),
		fmt.Sprintf("• %-13s Toggle this help", kb.DisplayActionKey("help")),
		fmt.Sprintf("• %-13s Quit", kb.DisplayActionKey("quit")),
	)

	chatNavigation := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat Navigation"),
		fmt.Sprintf("• %-13s Scroll down 1 line", kb.DisplayActionKey("scroll_down")),
		fmt.Sprintf("• %-13s Scroll up 1 line", kb.DisplayActionKey("scroll_up")),
		fmt.Sprintf("• %-13s Full page down", kb.DisplayActionKey("page_down")),
		fmt.Sprintf("• %-13s Full page up", kb.DisplayActionKey("page_up")),
		fmt.Sprintf("• %-13s Jump to top", kb.DisplayActionKey("scroll_to_top")),
		fmt.Sprintf("• %-13s Jump to bottom", kb.DisplayActionKey("scroll_to_bottom")),
		fmt.Sprintf("• %-13s Scroll left", kb.DisplayActionKey("scroll_left")),
		fmt.Sprintf("• %-13s Scroll right", kb.DisplayActionKey("scroll_right")),
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Chat Actions"),
		"• Enter         Send prompt",
		"• Alt+Enter     New line",
		fmt.Sprintf("• %-13s Cancel request", kb.DisplayActionKey("cancel_request")),
		fmt.Sprintf("• %-13s Copy last response", kb.DisplayActionKey("yank_last_response")),
	)

	modes := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Modes"),
		"• generate  history + prompt as one text",
		"• chat      history as a message list",
		"• code      like generate, fixed-width reply",
	)

	column1 := lipgloss.JoinVertical(lipgloss.Left, globalActions, "", modes)
	column2 := lipgloss.JoinVertical(lipgloss.Left, chatNavigation, "", chatActions)

	columnStyle := lipgloss.NewStyle().Width(46).PaddingLeft(4)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, columnStyle.Render(column1), columnStyle.Render(column2))

	footer := DimStyle.Render(fmt.Sprintf("Press %s or Esc to close", kb.DisplayActionKey("help")))

	content := lipgloss.JoinVertical(lipgloss.Center, title, "", columns, "", footer)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
