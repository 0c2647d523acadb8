package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ochat/config"
	appmodel "ochat/model"
	"ochat/provider/testutil"
	"ochat/sysstat"
)

func newTestView(t *testing.T, p appmodel.Provider) AppView {
	t.Helper()
	cfg := testutil.TestConfig()
	cfg.Theme = config.ThemeDark

	a := NewAppView(cfg, p, nil, "test")
	next, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(AppView)
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func runeKeys(s string) []tea.KeyMsg {
	var keys []tea.KeyMsg
	for _, r := range s {
		keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return keys
}

func press(t *testing.T, a AppView, msgs ...tea.Msg) (AppView, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = a.Update(msg)
		a = next.(AppView)
	}
	return a, cmd
}

// collect runs cmd and any batched commands, returning the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func responseFrom(t *testing.T, cmd tea.Cmd) appmodel.ResponseMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if resp, ok := msg.(appmodel.ResponseMsg); ok {
			return resp
		}
	}
	t.Fatal("command produced no ResponseMsg")
	return appmodel.ResponseMsg{}
}

func submit(t *testing.T, a AppView, prompt string) AppView {
	t.Helper()
	a.textarea.SetValue(prompt)
	a, cmd := press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	a, _ = press(t, a, responseFrom(t, cmd))
	return a
}

func TestSubmitAppendsUserAndReplyBubbles(t *testing.T) {
	mock := testutil.NewMockProvider()
	a := newTestView(t, mock)

	a = submit(t, a, "hello")

	bubbles := a.Transcript().Bubbles()
	if len(bubbles) != 2 {
		t.Fatalf("bubbles: got %d, want 2", len(bubbles))
	}
	if bubbles[0].Label != "You" || bubbles[0].Content != "hello" || !bubbles[0].User {
		t.Errorf("user bubble: got %+v", bubbles[0])
	}
	if bubbles[1].Label != "llama3.1" || bubbles[1].Content != "Mock response" || bubbles[1].Code {
		t.Errorf("reply bubble: got %+v", bubbles[1])
	}
	if a.Model().Conversation.Len() != 2 {
		t.Errorf("turns: got %d, want 2", a.Model().Conversation.Len())
	}
	if a.textarea.Value() != "" {
		t.Errorf("prompt box not cleared: %q", a.textarea.Value())
	}
	if len(a.Notifications()) != 0 {
		t.Errorf("unexpected notifications: %+v", a.Notifications())
	}
	if a.Model().Pending {
		t.Error("still pending after response")
	}
}

func TestEmptyPromptWarnsWithoutCallingBackend(t *testing.T) {
	mock := testutil.NewMockProvider()
	a := newTestView(t, mock)

	a.textarea.SetValue("   \n  ")
	a, cmd := press(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("empty prompt must not start a request")
	}
	if mock.Calls() != 0 {
		t.Errorf("backend calls: got %d, want 0", mock.Calls())
	}
	if a.Model().Conversation.Len() != 0 || a.Transcript().Len() != 0 {
		t.Error("empty prompt changed state")
	}

	n := a.Notifications()
	if len(n) != 1 || n[0].Title != "Input Error" || n[0].Message != "Prompt cannot be empty" || n[0].Type != ModalTypeWarning {
		t.Errorf("notifications: got %+v", n)
	}
}

func TestBackendFailureShowsExactlyOneError(t *testing.T) {
	tests := []struct {
		mode  appmodel.Mode
		title string
	}{
		{appmodel.ModeGenerate, "Generation Error"},
		{appmodel.ModeCode, "Generation Error"},
		{appmodel.ModeChat, "Chat Error"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			a := newTestView(t, testutil.NewFailingProvider(errors.New("connection refused")))
			a.Model().SetMode(tt.mode)

			a = submit(t, a, "hi")

			n := a.Notifications()
			if len(n) != 1 {
				t.Fatalf("notifications: got %d, want 1", len(n))
			}
			if n[0].Title != tt.title || n[0].Message != "connection refused" || n[0].Type != ModalTypeError {
				t.Errorf("notification: got %+v", n[0])
			}

			bubbles := a.Transcript().Bubbles()
			if len(bubbles) != 2 || bubbles[1].Content != "" {
				t.Errorf("failed reply must render as an empty bubble: %+v", bubbles)
			}
			last, ok := a.Model().Conversation.LastAssistant()
			if !ok || last.Content != "" {
				t.Errorf("assistant turn: got %+v", last)
			}
		})
	}
}

func TestCodeModeMarksReplyAsCode(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())
	a.Model().SetMode(appmodel.ModeCode)

	a = submit(t, a, "write fizzbuzz")

	bubbles := a.Transcript().Bubbles()
	if len(bubbles) != 2 || !bubbles[1].Code || bubbles[0].Code {
		t.Errorf("code flag: got %+v", bubbles)
	}
}

func TestResetClearsTranscriptAndConversation(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())
	a = submit(t, a, "one")
	a = submit(t, a, "two")

	a, _ = press(t, a, altKey('r'))

	if a.Transcript().Len() != 0 {
		t.Errorf("transcript bubbles after reset: %d", a.Transcript().Len())
	}
	if a.Model().Conversation.Len() != 0 {
		t.Errorf("turns after reset: %d", a.Model().Conversation.Len())
	}
	n := a.Notifications()
	if len(n) != 1 || n[0].Message != "Conversation context has been reset." {
		t.Errorf("notifications: got %+v", n)
	}
}

func TestResetDropsResponseInFlight(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())

	a.textarea.SetValue("slow question")
	a, cmd := press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if !a.Model().Pending {
		t.Fatal("expected pending request")
	}

	a, _ = press(t, a, altKey('r'))
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEnter}) // dismiss reset notice
	a, _ = press(t, a, responseFrom(t, cmd))

	if a.Transcript().Len() != 0 || a.Model().Conversation.Len() != 0 {
		t.Error("stale response was committed after reset")
	}
	if len(a.Notifications()) != 0 {
		t.Errorf("stale response raised notifications: %+v", a.Notifications())
	}
}

func TestSecondSubmitIgnoredWhilePending(t *testing.T) {
	mock := testutil.NewMockProvider()
	a := newTestView(t, mock)

	a.textarea.SetValue("first")
	a, first := press(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	a.textarea.SetValue("second")
	a, second := press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if second != nil {
		t.Error("submit while pending must not start another request")
	}

	a, _ = press(t, a, responseFrom(t, first))
	if mock.Calls() != 1 {
		t.Errorf("backend calls: got %d, want 1", mock.Calls())
	}
	if a.textarea.Value() != "second" {
		t.Errorf("ignored prompt should stay in the box, got %q", a.textarea.Value())
	}
}

func TestModelSelectorFiltersAndSelects(t *testing.T) {
	mock := testutil.NewMockProvider()
	a := newTestView(t, mock)

	a, _ = press(t, a, altKey('m'))
	if !a.modelSelector.Visible() {
		t.Fatal("model selector not open")
	}
	for _, k := range runeKeys("70b") {
		a, _ = press(t, a, k)
	}

	matches := a.modelSelector.Matches()
	if len(matches) != 1 || matches[0].Key != "llama3.1_70b" {
		t.Fatalf("filtered: got %+v", matches)
	}

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	if a.modelSelector.Visible() {
		t.Error("selector still open after selection")
	}
	if a.Model().ModelKey != "llama3.1_70b" || a.Model().ModelName() != "llama3.1:70b" {
		t.Errorf("model: got key=%q name=%q", a.Model().ModelKey, a.Model().ModelName())
	}
	n := a.Notifications()
	if len(n) != 1 || n[0].Message != "Model set to: llama3.1_70b" || n[0].Type != ModalTypeInfo {
		t.Errorf("notifications: got %+v", n)
	}
}

func TestModeSelectorSelects(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())

	a, _ = press(t, a,
		altKey('o'),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	if a.Model().Mode != appmodel.ModeChat {
		t.Errorf("mode: got %s, want chat", a.Model().Mode)
	}
	n := a.Notifications()
	if len(n) != 1 || n[0].Message != "Mode set to: chat" {
		t.Errorf("notifications: got %+v", n)
	}
}

func TestSelectorEscapeKeepsSelection(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())

	a, _ = press(t, a, altKey('m'), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEsc})

	if a.modelSelector.Visible() {
		t.Error("selector still open")
	}
	if a.Model().ModelKey != "llama3.1" {
		t.Errorf("model changed on escape: %q", a.Model().ModelKey)
	}
	if len(a.Notifications()) != 0 {
		t.Error("escape should not notify")
	}
}

func TestNotificationsDismissInOrder(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())
	a.pushNotification("First", "one", ModalTypeInfo)
	a.pushNotification("Second", "two", ModalTypeWarning)

	if !strings.Contains(a.View(), "First") {
		t.Error("oldest notification should be on top")
	}

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	n := a.Notifications()
	if len(n) != 1 || n[0].Title != "Second" {
		t.Errorf("after dismiss: got %+v", n)
	}

	// Keys other than Enter/Esc do not reach the prompt while a modal is up
	a, _ = press(t, a, runeKeys("x")[0])
	if a.textarea.Value() != "" {
		t.Errorf("key leaked into prompt: %q", a.textarea.Value())
	}
}

func TestToggleThemeLeavesConversationAlone(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())
	a = submit(t, a, "hi")

	before := a.theme
	a, _ = press(t, a, altKey('d'))

	if a.theme == before {
		t.Error("theme not toggled")
	}
	if a.Transcript().Len() != 2 || a.Model().Conversation.Len() != 2 {
		t.Error("theme toggle touched conversation data")
	}
}

func TestStatsLoopReschedules(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())

	a, cmd := press(t, a, appmodel.StatsMsg{Usage: sysstat.Usage{CPU: 12, GPU: 42}})
	if cmd == nil {
		t.Error("stats result should schedule the next tick")
	}
	if a.usage.CPU != 12 || a.usage.GPU != 42 {
		t.Errorf("usage: got %+v", a.usage)
	}
	if !strings.Contains(a.renderStatusBar(), "42%") {
		t.Error("status bar missing GPU usage")
	}

	_, cmd = press(t, a, appmodel.StatsTickMsg{})
	if cmd == nil {
		t.Error("tick should start a sample")
	}

	a.dataModel.Quitting = true
	if _, cmd = press(t, a, appmodel.StatsMsg{}); cmd != nil {
		t.Error("stats loop must stop once quitting")
	}
}

func TestInstalledModelsMarkSelectorRows(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())

	a, _ = press(t, a, collect(a.dataModel.FetchInstalledModels())[0])

	marked := map[string]bool{}
	for _, item := range a.modelSelector.Matches() {
		marked[item.Key] = item.Marked
	}
	if !marked["llama3.1"] || !marked["codellama"] {
		t.Errorf("installed models not marked: %+v", marked)
	}
	if marked["mistral"] {
		t.Error("mistral is not installed")
	}
}

func TestQuitStopsProgram(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())

	a, cmd := press(t, a, altKey('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !a.Model().Quitting {
		t.Error("model not marked quitting")
	}
}

func TestSubmitScrollsToNewestAfterManualScrollUp(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())
	for i := 0; i < 15; i++ {
		a = submit(t, a, "question")
	}
	if a.viewport.TotalLineCount() <= a.viewport.Height {
		t.Fatalf("transcript too short to scroll: %d lines", a.viewport.TotalLineCount())
	}

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyPgUp}, tea.KeyMsg{Type: tea.KeyPgUp})
	if a.viewport.AtBottom() {
		t.Fatal("page up did not leave the bottom")
	}

	a = submit(t, a, "latest")

	if !a.viewport.AtBottom() {
		t.Errorf("view not anchored to the newest bubble (offset %d)", a.viewport.YOffset)
	}
}

func TestWideCodeScrollsHorizontally(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())
	a.transcript.Append(Bubble{Label: "codellama", Content: strings.Repeat("x", 300), Code: true})
	a.updateViewportContent(true)

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	if a.viewport.HorizontalScrollPercent() <= 0 {
		t.Error("scroll right did not move the view")
	}

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if a.viewport.HorizontalScrollPercent() != 0 {
		t.Errorf("scroll left did not return to the first column: %v", a.viewport.HorizontalScrollPercent())
	}
}

func TestHelpShowsVersion(t *testing.T) {
	a := newTestView(t, testutil.NewMockProvider())
	a, _ = press(t, a, altKey('h'))

	if !strings.Contains(a.View(), "ochat test") {
		t.Error("help modal should show the version")
	}
}
