package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ochat/config"
	appmodel "ochat/model"
	"ochat/ollama"
	"ochat/sysstat"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model
	sampler   sysstat.Sampler

	// UI Components
	viewport   viewport.Model
	textarea   textarea.Model
	transcript *Transcript

	// Window state
	width  int
	height int
	ready  bool
	theme  Theme

	// Request in flight
	loadingSpinner spinner.Model
	cancelRequest  context.CancelFunc
	requestStart   time.Time

	showHelp      bool
	modelSelector Selector
	modeSelector  Selector

	// Acknowledge modals, oldest first; Enter dismisses the head
	notifications []Notification

	// Status bar
	usage          sysstat.Usage
	backendOnline  bool
	backendChecked bool
	notice         string
}

func NewAppView(cfg *config.Config, provider appmodel.Provider, sampler sysstat.Sampler, version string) AppView {
	dataModel := appmodel.NewModel(cfg, provider, version)

	ta := textarea.New()
	ta.Placeholder = "Type a prompt and press Enter..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter for newline, Enter alone submits (handled in Update)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	theme := ResolveTheme(cfg.Theme)
	ApplyTheme(theme)

	a := AppView{
		dataModel:      dataModel,
		sampler:        sampler,
		viewport:       viewport.New(0, 0),
		textarea:       ta,
		transcript:     NewTranscript(),
		theme:          theme,
		loadingSpinner: sp,
		modelSelector:  NewSelector("Select Model"),
		modeSelector:   NewSelector("Select Mode"),
	}

	a.refreshModelItems()
	a.modeSelector.SetItems(modeItems())

	return a
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		a.dataModel.PingProvider(),
		a.dataModel.FetchInstalledModels(),
		appmodel.SampleStats(a.sampler),
	)
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading ochat..."
	}

	// Layers, top first: notifications, help, selectors, main view
	if len(a.notifications) > 0 {
		n := a.notifications[0]
		return RenderAcknowledgeModal(n.Title, n.Message, n.Type, a.width, a.height)
	}

	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}

	if a.modelSelector.Visible() {
		return a.modelSelector.View(FormatFooter("↑/↓", "Navigate", "Enter", "Select", "Esc", "Close"), a.width, a.height)
	}

	if a.modeSelector.Visible() {
		return a.modeSelector.View(FormatFooter("↑/↓", "Navigate", "Enter", "Select", "Esc", "Close"), a.width, a.height)
	}

	title := TitleStyle.Render("ochat") + DimStyle.Render(" · "+a.dataModel.ModelName()+" · "+a.dataModel.Mode.String())
	separator := DimStyle.Render(strings.Repeat("─", a.width))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		a.viewport.View(),
		separator,
		a.textarea.View(),
		a.renderStatusBar(),
	)
}

// updateViewportContent re-renders the transcript. The view re-anchors to the
// newest bubble when gotoBottom is set.
func (a *AppView) updateViewportContent(gotoBottom bool) {
	if !a.ready {
		return
	}
	a.viewport.SetContent(a.transcript.Render(a.viewport.Width, a.theme))
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func (a *AppView) pushNotification(title, message string, modalType ModalType) {
	a.notifications = append(a.notifications, Notification{Title: title, Message: message, Type: modalType})
	if config.DebugLog != nil {
		config.DebugLog.Printf("[UI] Notification: %s: %s", title, message)
	}
}

// refreshModelItems rebuilds the model selector rows, marking installed models.
func (a *AppView) refreshModelItems() {
	catalog := a.dataModel.Config.Catalog
	entries := catalog.Entries()
	items := make([]SelectorItem, len(entries))
	for i, e := range entries {
		items[i] = SelectorItem{
			Key:    e.Key,
			Detail: e.Name,
			Marked: ollama.IsInstalled(a.dataModel.InstalledModels, e.Name),
		}
	}
	a.modelSelector.SetItems(items)
}

func modeItems() []SelectorItem {
	modes := appmodel.Modes()
	items := make([]SelectorItem, len(modes))
	for i, m := range modes {
		items[i] = SelectorItem{Key: m.String()}
	}
	return items
}

// Model exposes session state to tests and the entrypoint.
func (a AppView) Model() *appmodel.Model {
	return a.dataModel
}

func (a AppView) Transcript() *Transcript {
	return a.transcript
}

func (a AppView) Notifications() []Notification {
	out := make([]Notification, len(a.notifications))
	copy(out, a.notifications)
	return out
}
