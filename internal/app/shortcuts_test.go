package app

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/clipboard"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/router"
	"github.com/zhubert/parley/internal/ui"
	"github.com/zhubert/parley/internal/ui/modals"
)

// =============================================================================
// ShortcutRegistry Tests
// =============================================================================

func TestShortcutRegistry_AllShortcutsHaveHandlers(t *testing.T) {
	for _, s := range ShortcutRegistry {
		if s.Handler == nil {
			t.Errorf("Shortcut %q has no handler", s.Key)
		}
		if s.Key == "" {
			t.Error("Shortcut has empty key")
		}
		if s.Description == "" {
			t.Errorf("Shortcut %q has no description", s.Key)
		}
	}
}

func TestShortcutRegistry_NoDuplicateKeys(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range ShortcutRegistry {
		if seen[s.Key] {
			t.Errorf("Duplicate shortcut key: %q", s.Key)
		}
		seen[s.Key] = true
	}
	if seen[helpShortcut.Key] {
		t.Error("Help shortcut key '?' duplicated in registry")
	}
}

func TestShortcutRegistry_ValidCategories(t *testing.T) {
	valid := make(map[string]bool)
	for _, c := range categoryOrder {
		valid[c] = true
	}
	for _, s := range append(append([]Shortcut{}, ShortcutRegistry...), DisplayOnlyShortcuts...) {
		if !valid[s.Category] {
			t.Errorf("Shortcut %q%q has invalid category: %q", s.Key, s.DisplayKey, s.Category)
		}
	}
}

func TestHelpSections_FollowConnection(t *testing.T) {
	helpKeys := func(m *Model) map[string]bool {
		out := make(map[string]bool)
		for _, section := range m.getApplicableHelpSections(ShortcutRegistry, DisplayOnlyShortcuts) {
			for _, s := range section.Shortcuts {
				out[s.Key] = true
			}
		}
		return out
	}

	offline := helpKeys(testModelWithSize(testConfig(t), Options{}, 100, 30))
	if offline["ctrl+l"] || offline["ctrl+a"] || offline["ctrl+k"] {
		t.Error("server shortcuts should be hidden while offline")
	}
	if !offline["ctrl+o"] || !offline["?"] {
		t.Error("general shortcuts should always be listed")
	}

	m, _ := loggedIn(t, "alice")
	online := helpKeys(m)
	if !online["ctrl+l"] || !online["ctrl+a"] || !online["ctrl+k"] {
		t.Error("server shortcuts should be listed once connected")
	}
	if online["ctrl+d"] {
		t.Error("dismiss is listed only with a pending notification")
	}
}

func TestHelp_OnlyWithEmptyComposer(t *testing.T) {
	m, _ := loggedIn(t, "alice")

	m.chat.SetInput("what")
	m.Update(keyPress("?"))
	if m.modal.IsVisible() {
		t.Fatal("? should be typed when the composer has text")
	}

	m.chat.ClearInput()
	m.Update(keyPress("?"))
	if _, ok := m.modal.Top().(*modals.HelpState); !ok {
		t.Fatalf("top = %T, want help", m.modal.Top())
	}

	m.Update(keyPress("esc"))
	if m.modal.IsVisible() {
		t.Error("esc should close help")
	}
}

func TestHelp_EnterRunsShortcut(t *testing.T) {
	m, _ := loggedIn(t, "alice")
	m.Update(keyPress("?"))

	// the first shortcut listed is "Next conversation"
	m.Update(keyPress("enter"))
	if m.modal.IsVisible() {
		t.Errorf("help should close, top = %T", m.modal.Top())
	}
	if m.router.Focused() != "alice" {
		t.Errorf("focused = %q, want the next conversation", m.router.Focused())
	}
}

// =============================================================================
// Conversation shortcuts
// =============================================================================

func TestCycleConversations(t *testing.T) {
	tests := []struct {
		keys []string
		want string
	}{
		{keys: []string{"ctrl+n"}, want: "alice"},
		{keys: []string{"ctrl+n", "ctrl+n"}, want: "bob"},
		{keys: []string{"ctrl+n", "ctrl+n", "ctrl+n"}, want: router.Lobby},
		{keys: []string{"ctrl+p"}, want: "bob"},
		{keys: []string{"alt+right"}, want: "alice"},
		{keys: []string{"alt+left", "alt+left"}, want: "alice"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.keys, ","), func(t *testing.T) {
			m, conn := loggedIn(t, "alice")
			deliver(m, conn, "bob> /w hi")
			m.focusConversation(router.Lobby)

			for _, k := range tt.keys {
				m.Update(keyPress(k))
			}
			if m.router.Focused() != tt.want {
				t.Errorf("focused = %q, want %q", m.router.Focused(), tt.want)
			}
			if m.chat.FocusedConversation() != tt.want {
				t.Errorf("chat shows %q, want %q", m.chat.FocusedConversation(), tt.want)
			}
			if m.tabs.Active() != tt.want {
				t.Errorf("active tab = %q, want %q", m.tabs.Active(), tt.want)
			}
		})
	}
}

func TestCopyLastMessage(t *testing.T) {
	var (
		mu      sync.Mutex
		written string
	)
	restore := clipboard.SetBackend(
		func() []byte { return nil },
		func(b []byte) {
			mu.Lock()
			written = string(b)
			mu.Unlock()
		},
	)
	defer restore()

	m, conn := loggedIn(t, "alice")
	deliver(m, conn, "bob> first")
	deliver(m, conn, "carol> second")

	_, cmd := m.Update(keyPress("ctrl+y"))
	runCmd(cmd)

	mu.Lock()
	defer mu.Unlock()
	if written != "carol> second" {
		t.Errorf("clipboard = %q, want the last message", written)
	}
}

func TestCopyLastMessage_Empty(t *testing.T) {
	m, _ := loggedIn(t, "alice")
	m.Update(keyPress("ctrl+y"))
	if !m.footer.HasFlash() {
		t.Error("expected a warning when there is nothing to copy")
	}
}

func TestPasteFromClipboard(t *testing.T) {
	restore := clipboard.SetBackend(func() []byte { return []byte("pasted text") }, func([]byte) {})
	defer restore()

	m, _ := loggedIn(t, "alice")
	_, cmd := m.Update(keyPress("ctrl+v"))
	for _, msg := range runCmd(cmd) {
		m.Update(msg)
	}
	if got := m.chat.GetInput(); got != "pasted text" {
		t.Errorf("composer = %q", got)
	}
}

func TestBracketedPaste(t *testing.T) {
	m, _ := loggedIn(t, "alice")
	m.Update(tea.PasteMsg{Content: "from terminal"})
	if got := m.chat.GetInput(); got != "from terminal" {
		t.Errorf("composer = %q", got)
	}
}

// =============================================================================
// Mouse and view
// =============================================================================

func TestMouse_ClickTabFocuses(t *testing.T) {
	m, _ := loggedIn(t, "alice")
	m.View()

	// "Lobby" plus one cell of padding on each side, then "alice"
	m.Update(tea.MouseClickMsg{X: len("Lobby") + 3, Y: ui.HeaderHeight, Button: tea.MouseLeft})
	if m.router.Focused() != "alice" {
		t.Errorf("focused = %q, want alice", m.router.Focused())
	}
}

func TestMouse_IgnoredUnderDialog(t *testing.T) {
	m, _ := loggedIn(t, "alice")
	m.View()
	m.Update(keyPress("ctrl+o"))

	m.Update(tea.MouseClickMsg{X: len("Lobby") + 3, Y: ui.HeaderHeight, Button: tea.MouseLeft})
	if m.router.Focused() != router.Lobby {
		t.Error("clicks must not reach the tabs while a dialog is open")
	}
}

func TestView(t *testing.T) {
	m := New(testConfig(t), Options{})
	if got := m.RenderToString(); got != "Loading..." {
		t.Errorf("before sizing got %q", got)
	}

	m, conn := loggedIn(t, "alice")
	deliver(m, conn, "bob> hello there")

	v := m.View()
	if !v.AltScreen || !v.ReportFocus || v.MouseMode != tea.MouseModeCellMotion {
		t.Error("view should use the alt screen with mouse and focus reporting")
	}
	out := m.RenderToString()
	for _, want := range []string{"Lobby", "alice", "hello there"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m.Update(keyPress("ctrl+o"))
	if out := m.RenderToString(); !strings.Contains(out, "Options") {
		t.Error("an open dialog should be drawn")
	}
}

// =============================================================================
// Dialogs
// =============================================================================

func TestQuit(t *testing.T) {
	m, conn := loggedIn(t, "alice")

	m.Update(keyPress("ctrl+c"))
	if !m.modal.IsOpen(modals.KindQuit) {
		t.Fatal("ctrl+c should ask first")
	}
	m.Update(keyPress("esc"))
	if m.modal.IsVisible() || conn.Closed() {
		t.Fatal("esc should stay")
	}

	m.Update(keyPress("esc"))
	if !m.modal.IsOpen(modals.KindQuit) {
		t.Fatal("esc without a selection should ask to quit")
	}
	_, cmd := m.Update(keyPress("enter"))
	if !isQuit(cmd) {
		t.Error("confirming should quit")
	}
	if !conn.Closed() {
		t.Error("quitting should close the connection")
	}
}

func TestOptions_ResetAndSave(t *testing.T) {
	m, _ := loggedIn(t, "alice")
	custom := config.Colors{Whisper: "#111111", Error: "#222222", Personal: "#333333"}
	if err := m.config.SetColors(custom); err != nil {
		t.Fatal(err)
	}

	m.Update(keyPress("ctrl+o"))
	opts, ok := m.modal.Top().(*modals.OptionsState)
	if !ok {
		t.Fatalf("top = %T, want options", m.modal.Top())
	}
	if opts.Colors() != custom {
		t.Errorf("options opened with %+v, want the saved colors", opts.Colors())
	}

	m.Update(keyPress("ctrl+r"))
	opts = m.modal.Top().(*modals.OptionsState)
	if opts.Colors() != defaultColors {
		t.Errorf("ctrl+r gave %+v, want defaults", opts.Colors())
	}
	if m.modal.Depth() != 1 {
		t.Errorf("depth = %d, reopening must replace the dialog", m.modal.Depth())
	}

	m.Update(keyPress("enter"))
	if m.modal.IsVisible() {
		t.Fatalf("options should close on save, error %q", m.modal.GetError())
	}
	if m.config.GetColors() != defaultColors {
		t.Errorf("saved colors = %+v", m.config.GetColors())
	}
}

func TestAccount_ChangePasswordNeedsInput(t *testing.T) {
	m, conn := loggedIn(t, "alice")

	m.Update(keyPress("ctrl+a"))
	if !m.modal.IsOpen(modals.KindAccount) {
		t.Fatal("ctrl+a should open the account menu")
	}
	m.Update(keyPress("enter"))
	if _, ok := m.modal.Top().(*modals.ChangePasswordState); !ok {
		t.Fatalf("top = %T, want change password", m.modal.Top())
	}

	m.Update(keyPress("enter"))
	if m.modal.GetError() == "" {
		t.Error("empty passwords should be rejected")
	}
	if len(conn.Sent()) != 0 {
		t.Errorf("sent = %q", conn.Sent())
	}

	// esc steps back to the menu underneath
	m.Update(keyPress("esc"))
	if _, ok := m.modal.Top().(*modals.AccountState); !ok {
		t.Errorf("top = %T, want the account menu", m.modal.Top())
	}
}

func TestAccount_LogOut(t *testing.T) {
	m, conn := loggedIn(t, "alice")

	m.Update(keyPress("ctrl+a"))
	m.Update(keyPress("down"))
	m.Update(keyPress("down"))
	m.Update(keyPress("enter"))

	if m.Connected() || !conn.Closed() {
		t.Error("log out should close the connection")
	}
	if !m.modal.IsOpen(modals.KindLogin) {
		t.Error("log out should return to login")
	}
	if m.router.LocalUser() != "" {
		t.Errorf("router user = %q, want a fresh router", m.router.LocalUser())
	}
}

func TestConnectionInfo(t *testing.T) {
	m, _ := loggedIn(t, "alice")
	m.Update(keyPress("ctrl+k"))

	if !m.modal.IsOpen(modals.KindConnectionInfo) {
		t.Fatal("ctrl+k should open connection info")
	}
	out := m.modal.Top().Render()
	for _, want := range []string{"alice", "chat.example:8989", "127.0.0.1:50000"} {
		if !strings.Contains(out, want) {
			t.Errorf("connection info missing %q", want)
		}
	}
	m.Update(keyPress("enter"))
	if m.modal.IsVisible() {
		t.Error("enter should close it")
	}
}

func TestTextViewers(t *testing.T) {
	tests := []struct {
		key   string
		title string
	}{
		{key: "ctrl+t", title: "Terms and Conditions"},
		{key: "ctrl+g", title: "API Guide"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := testModelWithSize(testConfig(t), Options{}, 100, 30)
			m.Update(keyPress(tt.key))
			if got := m.modal.Top(); got == nil || got.Title() != tt.title {
				t.Fatalf("top = %v, want %q", got, tt.title)
			}
			m.Update(keyPress("esc"))
			if m.modal.IsVisible() {
				t.Error("esc should close the viewer")
			}
		})
	}
}

func TestRenderDoc(t *testing.T) {
	out := renderDoc("## First\n\nbody one\n\n## Second\n\nbody two\n")
	for _, want := range []string{"First", "body one", "Second", "body two"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered doc missing %q", want)
		}
	}
	if strings.Index(out, "First") > strings.Index(out, "Second") {
		t.Error("sections out of order")
	}
}

func TestConfigChanged_AppliesTheme(t *testing.T) {
	m, _ := loggedIn(t, "alice")
	defer ui.SetTheme(ui.DefaultTheme)

	next := config.New(m.config.Path())
	next.SetTheme(string(ui.ThemeNord))

	_, cmd := m.Update(ConfigChangedMsg{Config: next})
	if cmd == nil {
		t.Error("the config listener should be restarted")
	}
	if ui.CurrentThemeName() != ui.ThemeNord {
		t.Errorf("theme = %q, want nord", ui.CurrentThemeName())
	}
	if m.config != next {
		t.Error("the reloaded config should replace the old one")
	}
}

func TestConfigChanged_KeepsScrollPositions(t *testing.T) {
	m, conn := loggedIn(t, "me")
	defer ui.SetMessageColors(defaultColors)

	for i := range 101 {
		deliver(m, conn, fmt.Sprintf("alice> /w message %d", i))
	}
	if !m.chat.AtBottom("alice") {
		t.Fatal("alice should follow new whispers while focused")
	}
	m.focusConversation(router.Lobby)
	offset := m.chat.YOffset("alice")

	next := config.New(m.config.Path())
	if err := next.SetColors(config.Colors{Whisper: "#112233", Error: "#445566", Personal: "#778899"}); err != nil {
		t.Fatalf("SetColors() error = %v", err)
	}
	m.Update(ConfigChangedMsg{Config: next})

	if got := m.chat.YOffset("alice"); got != offset {
		t.Errorf("alice YOffset after restyle = %d, want %d", got, offset)
	}

	m.focusConversation("alice")
	if !m.chat.AtBottom("alice") {
		t.Fatal("alice should still show its last line after a restyle")
	}
	deliver(m, conn, "alice> /w one more")
	if !m.chat.AtBottom("alice") {
		t.Error("alice should keep following new whispers")
	}
}
