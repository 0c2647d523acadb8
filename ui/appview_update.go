package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ochat/config"
	appmodel "ochat/model"
)

// Code bubbles keep their columns; wide lines are reached by scrolling sideways.
const horizontalScrollStep = 8

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Reserve space for title (1 line), separator (1 line), textarea (3 lines), and status bar (1 line)
		viewportHeight := a.height - 6
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		a.viewport.Width = a.width
		a.viewport.Height = viewportHeight
		a.textarea.SetWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		if !a.dataModel.Pending {
			return a, nil
		}
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		return a, cmd

	case appmodel.ResponseMsg:
		return a.handleResponse(msg.Response)

	case appmodel.StatsTickMsg:
		if a.dataModel.Quitting {
			return a, nil
		}
		return a, appmodel.SampleStats(a.sampler)

	case appmodel.StatsMsg:
		a.usage = msg.Usage
		if msg.Err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Resource sampling: %v", msg.Err)
		}
		if a.dataModel.Quitting {
			return a, nil
		}
		return a, appmodel.ScheduleStats(a.dataModel.Config.StatsInterval)

	case appmodel.BackendStatusMsg:
		a.backendChecked = true
		a.backendOnline = msg.Online
		return a, nil

	case appmodel.InstalledModelsMsg:
		if msg.Err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Listing installed models failed: %v", msg.Err)
			}
			return a, nil
		}
		a.dataModel.InstalledModels = msg.Models
		a.refreshModelItems()
		return a, nil

	case appmodel.ClipboardMsg:
		if msg.Err != nil {
			a.pushNotification("Clipboard Error", msg.Err.Error(), ModalTypeError)
			return a, nil
		}
		a.notice = "Copied last response"
		return a, nil
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.Keybindings
	keyStr := msg.String()
	a.notice = ""

	if keyStr == "ctrl+c" {
		return a.quit()
	}

	if len(a.notifications) > 0 {
		switch keyStr {
		case "enter", "esc":
			a.notifications = a.notifications[1:]
		}
		return a, nil
	}

	if a.showHelp {
		if kb.Matches(keyStr, "help") || keyStr == "esc" {
			a.showHelp = false
		}
		return a, nil
	}

	if a.modelSelector.Visible() {
		return a, a.updateSelector(msg, &a.modelSelector, (*AppView).selectModel)
	}
	if a.modeSelector.Visible() {
		return a, a.updateSelector(msg, &a.modeSelector, (*AppView).selectMode)
	}

	switch {
	case kb.Matches(keyStr, "quit"):
		return a.quit()

	case kb.Matches(keyStr, "help"):
		a.showHelp = true
		return a, nil

	case kb.Matches(keyStr, "model_selector"):
		return a, a.modelSelector.Open(a.dataModel.ModelKey)

	case kb.Matches(keyStr, "mode_selector"):
		return a, a.modeSelector.Open(a.dataModel.Mode.String())

	case kb.Matches(keyStr, "reset_context"):
		a.resetContext()
		return a, nil

	case kb.Matches(keyStr, "toggle_theme"):
		a.theme = a.theme.Toggled()
		ApplyTheme(a.theme)
		a.updateViewportContent(false)
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Theme set to %s", a.theme.Name())
		}
		return a, nil

	case kb.Matches(keyStr, "yank_last_response"):
		cmd := a.dataModel.CopyLastResponse()
		if cmd == nil {
			a.notice = "No response to copy yet"
		}
		return a, cmd

	case kb.Matches(keyStr, "cancel_request"):
		if a.dataModel.Pending && a.cancelRequest != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[UI] Cancelling in-flight request")
			}
			a.cancelRequest()
		}
		return a, nil

	case kb.Matches(keyStr, "scroll_up"):
		a.viewport.SetYOffset(a.viewport.YOffset - 1)
		return a, nil

	case kb.Matches(keyStr, "scroll_down"):
		a.viewport.SetYOffset(a.viewport.YOffset + 1)
		return a, nil

	case kb.Matches(keyStr, "scroll_left"):
		a.viewport.ScrollLeft(horizontalScrollStep)
		return a, nil

	case kb.Matches(keyStr, "scroll_right"):
		a.viewport.ScrollRight(horizontalScrollStep)
		return a, nil

	case kb.Matches(keyStr, "page_up"):
		a.viewport.PageUp()
		return a, nil

	case kb.Matches(keyStr, "page_down"):
		a.viewport.PageDown()
		return a, nil

	case kb.Matches(keyStr, "scroll_to_top"):
		a.viewport.GotoTop()
		return a, nil

	case kb.Matches(keyStr, "scroll_to_bottom"):
		a.viewport.GotoBottom()
		return a, nil

	case keyStr == "enter":
		return a.submitPrompt()
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a *AppView) updateSelector(msg tea.KeyMsg, s *Selector, choose func(*AppView, SelectorItem)) tea.Cmd {
	kb := a.dataModel.Config.Keybindings
	keyStr := msg.String()

	switch {
	case kb.Matches(keyStr, "selector_close"):
		s.Close()
		return nil

	case kb.Matches(keyStr, "selector_up"):
		s.Move(-1)
		return nil

	case kb.Matches(keyStr, "selector_down"):
		s.Move(1)
		return nil

	case kb.Matches(keyStr, "selector_select"):
		item, ok := s.Selected()
		s.Close()
		if ok {
			choose(a, item)
		}
		return nil
	}

	return s.UpdateFilter(msg)
}

func (a *AppView) selectModel(item SelectorItem) {
	if err := a.dataModel.SetModelKey(item.Key); err != nil {
		a.pushNotification("Model Error", err.Error(), ModalTypeError)
		return
	}
	a.pushNotification("Model Selected", "Model set to: "+item.Key, ModalTypeInfo)
}

func (a *AppView) selectMode(item SelectorItem) {
	mode, err := appmodel.ParseMode(item.Key)
	if err != nil {
		a.pushNotification("Mode Error", err.Error(), ModalTypeError)
		return
	}
	a.dataModel.SetMode(mode)
	a.pushNotification("Mode Selected", "Mode set to: "+mode.String(), ModalTypeInfo)
}

// submitPrompt validates the prompt on the UI loop and sends the request off it.
func (a AppView) submitPrompt() (tea.Model, tea.Cmd) {
	req, err := a.dataModel.Prepare(a.textarea.Value())
	switch {
	case errors.Is(err, appmodel.ErrEmptyPrompt):
		a.pushNotification("Input Error", "Prompt cannot be empty", ModalTypeWarning)
		return a, nil
	case errors.Is(err, appmodel.ErrRequestPending):
		return a, nil
	case err != nil:
		a.pushNotification(a.dataModel.Mode.ErrorTitle(), err.Error(), ModalTypeError)
		return a, nil
	}

	a.textarea.Reset()

	ctx, cancel := context.WithTimeout(context.Background(), a.dataModel.Config.RequestTimeout)
	a.cancelRequest = cancel
	a.requestStart = time.Now()

	return a, tea.Batch(a.dataModel.SendRequest(ctx, req), a.loadingSpinner.Tick)
}

// handleResponse commits a finished request and draws both new bubbles.
func (a AppView) handleResponse(resp appmodel.Response) (tea.Model, tea.Cmd) {
	ex, err := a.dataModel.Commit(resp)
	if err != nil {
		// Stale: the conversation was reset while the request was in flight
		return a, nil
	}

	if a.cancelRequest != nil {
		a.cancelRequest()
		a.cancelRequest = nil
	}

	a.transcript.Append(Bubble{
		Label:     "You",
		Content:   ex.User.Content,
		User:      true,
		Timestamp: ex.User.Timestamp,
	})
	a.transcript.Append(Bubble{
		Label:     ex.Label,
		Content:   ex.Reply.Content,
		Code:      ex.Code,
		Timestamp: ex.Reply.Timestamp,
	})
	a.updateViewportContent(true)

	if ex.Err != nil {
		a.pushNotification(resp.Request.Mode.ErrorTitle(), requestErrorText(ex.Err), ModalTypeError)
	}

	return a, nil
}

func requestErrorText(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "Request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Request timed out: %v", err)
	default:
		return err.Error()
	}
}

// resetContext clears the conversation and the transcript. A request still in
// flight is cancelled and its response dropped when it lands.
func (a *AppView) resetContext() {
	if a.cancelRequest != nil {
		a.cancelRequest()
		a.cancelRequest = nil
	}

	a.dataModel.ResetContext()
	a.transcript.Reset()
	a.updateViewportContent(true)

	a.pushNotification("Context Reset", "Conversation context has been reset.", ModalTypeInfo)
}

func (a AppView) quit() (tea.Model, tea.Cmd) {
	if config.DebugLog != nil {
		config.DebugLog.Printf("[UI] Quit requested")
	}
	a.dataModel.Quitting = true
	if a.cancelRequest != nil {
		a.cancelRequest()
		a.cancelRequest = nil
	}
	return a, tea.Quit
}
