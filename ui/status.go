package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func (a AppView) renderStatusBar() string {
	var left []string

	switch {
	case !a.backendChecked:
		left = append(left, DimStyle.Render("○ "+a.dataModel.ProviderName()))
	case a.backendOnline:
		left = append(left, lipgloss.NewStyle().Foreground(successColor).Render("● "+a.dataModel.ProviderName()))
	default:
		left = append(left, lipgloss.NewStyle().Foreground(dangerColor).Render("● "+a.dataModel.ProviderName()+" offline"))
	}

	left = append(left, HighlightStyle.Render(a.dataModel.ModelKey))
	left = append(left, "mode: "+a.dataModel.Mode.String())

	if a.dataModel.Pending {
		elapsed := time.Since(a.requestStart).Round(time.Second)
		left = append(left, fmt.Sprintf("%s waiting (%s, %s to cancel)", a.loadingSpinner.View(), elapsed, a.dataModel.Config.Keybindings.DisplayActionKey("cancel_request")))
	} else if a.notice != "" {
		left = append(left, lipgloss.NewStyle().Foreground(successColor).Render(a.notice))
	}

	right := fmt.Sprintf("CPU %3d%%  GPU %3d%%", a.usage.CPU, a.usage.GPU)
	if a.usage.GPUName != "" {
		right = fmt.Sprintf("CPU %3d%%  GPU %3d%% (%s)", a.usage.CPU, a.usage.GPU, a.usage.GPUName)
	}
	right += "  " + a.dataModel.Config.Keybindings.DisplayActionKey("help") + " help"

	leftText := strings.Join(left, StatusStyle.Render(" │ "))

	gap := a.width - lipgloss.Width(leftText) - runewidth.StringWidth(right)
	if gap < 1 {
		gap = 1
	}

	return leftText + strings.Repeat(" ", gap) + StatusStyle.Render(right)
}
