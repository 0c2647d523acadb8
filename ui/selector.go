package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

const selectorVisibleRows = 12

// SelectorItem is one pickable row. Detail is shown dimmed after the key.
type SelectorItem struct {
	Key    string
	Detail string
	Marked bool
}

// Selector is a filterable pick list shown as an overlay. Typing filters the
// list with fuzzy matching; the arrow keys move the cursor.
type Selector struct {
	title    string
	items    []SelectorItem
	filtered []int
	cursor   int
	offset   int
	visible  bool
	filter   textinput.Model
}

func NewSelector(title string) Selector {
	filter := textinput.New()
	filter.Prompt = "Filter: "
	filter.CharLimit = 64

	return Selector{
		title:  title,
		filter: filter,
	}
}

// SetItems replaces the rows, keeping the cursor on the same key when it still exists.
func (s *Selector) SetItems(items []SelectorItem) {
	current, hadCurrent := s.Selected()
	s.items = items
	s.applyFilter()
	if hadCurrent {
		s.focusKey(current.Key)
	}
}

// Open shows the selector with an empty filter and the cursor on currentKey.
func (s *Selector) Open(currentKey string) tea.Cmd {
	s.visible = true
	s.filter.SetValue("")
	s.applyFilter()
	s.focusKey(currentKey)
	return s.filter.Focus()
}

func (s *Selector) Close() {
	s.visible = false
	s.filter.Blur()
}

func (s Selector) Visible() bool {
	return s.visible
}

func (s Selector) Filter() string {
	return s.filter.Value()
}

// Matches returns the rows that pass the current filter, best match first.
func (s Selector) Matches() []SelectorItem {
	out := make([]SelectorItem, len(s.filtered))
	for i, idx := range s.filtered {
		out[i] = s.items[idx]
	}
	return out
}

func (s Selector) Selected() (SelectorItem, bool) {
	if s.cursor < 0 || s.cursor >= len(s.filtered) {
		return SelectorItem{}, false
	}
	return s.items[s.filtered[s.cursor]], true
}

func (s *Selector) Move(delta int) {
	if len(s.filtered) == 0 {
		s.cursor = 0
		return
	}
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor >= len(s.filtered) {
		s.cursor = len(s.filtered) - 1
	}
	s.scrollToCursor()
}

// UpdateFilter forwards a key to the filter input and refilters.
func (s *Selector) UpdateFilter(msg tea.Msg) tea.Cmd {
	before := s.filter.Value()
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	if s.filter.Value() != before {
		s.applyFilter()
	}
	return cmd
}

func (s *Selector) applyFilter() {
	value := strings.TrimSpace(s.filter.Value())

	if value == "" {
		s.filtered = make([]int, len(s.items))
		for i := range s.items {
			s.filtered[i] = i
		}
	} else {
		targets := make([]string, len(s.items))
		for i, item := range s.items {
			targets[i] = item.Key
		}

		matches := fuzzy.Find(value, targets)
		s.filtered = make([]int, len(matches))
		for i, match := range matches {
			s.filtered[i] = match.Index
		}
	}

	s.cursor = 0
	s.offset = 0
}

func (s *Selector) focusKey(key string) {
	for i, idx := range s.filtered {
		if s.items[idx].Key == key {
			s.cursor = i
			s.scrollToCursor()
			return
		}
	}
}

func (s *Selector) scrollToCursor() {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+selectorVisibleRows {
		s.offset = s.cursor - selectorVisibleRows + 1
	}
}

// View renders the overlay centred in a width x height area.
func (s Selector) View(footer string, width, height int) string {
	modalWidth := 50
	if width < modalWidth+10 {
		modalWidth = width - 10
	}
	if modalWidth < 20 {
		modalWidth = 20
	}

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render(s.title)

	var rows []string
	rows = append(rows, s.filter.View())
	rows = append(rows, "")

	if len(s.filtered) == 0 {
		rows = append(rows, DimStyle.Render("  No matches"))
	}

	end := s.offset + selectorVisibleRows
	if end > len(s.filtered) {
		end = len(s.filtered)
	}
	for i := s.offset; i < end; i++ {
		rows = append(rows, s.renderRow(s.items[s.filtered[i]], i == s.cursor, modalWidth))
	}

	if len(s.filtered) > selectorVisibleRows {
		rows = append(rows, DimStyle.Render("  "+strings.Repeat("·", 3)))
	}

	listSection := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Width(modalWidth).
		Render(strings.Join(rows, "\n"))

	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footer)

	content := strings.Join([]string{titleSection, listSection, footerSection}, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s Selector) renderRow(item SelectorItem, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = "▸ "
	}

	mark := " "
	if item.Marked {
		mark = "●"
	}

	keyWidth := width - 6
	detail := ""
	if item.Detail != "" && item.Detail != item.Key {
		detail = item.Detail
		keyWidth = (width - 6) / 2
	}

	key := item.Key
	if runewidth.StringWidth(key) > keyWidth {
		key = runewidth.Truncate(key, keyWidth, "…")
	}
	key += strings.Repeat(" ", keyWidth-runewidth.StringWidth(key))

	detailWidth := width - 6 - keyWidth
	if detail != "" && runewidth.StringWidth(detail) > detailWidth {
		detail = runewidth.Truncate(detail, detailWidth, "…")
	}

	line := marker + lipgloss.NewStyle().Foreground(successColor).Render(mark) + " " + key
	if selected {
		line = marker + lipgloss.NewStyle().Foreground(successColor).Render(mark) + " " + SelectedStyle.Render(key)
	}
	if detail != "" {
		line += DimStyle.Render(detail)
	}
	return line
}
