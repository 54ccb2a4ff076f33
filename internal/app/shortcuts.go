package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/parley/internal/clipboard"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/docs"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/protocol"
	"github.com/zhubert/parley/internal/ui"
	"github.com/zhubert/parley/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for the shortcuts of the chat screen.
type Shortcut struct {
	Key                string                              // The key binding (e.g., "ctrl+l")
	DisplayKey         string                              // Display name in help; defaults to Key
	Description        string                              // Human-readable description
	Category           string                              // Section for help modal grouping
	RequiresConnection bool                                // Must be logged in
	Handler            func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition          func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryConversations = "Conversations"
	CategoryServer        = "Server"
	CategoryComposer      = "Composer"
	CategoryGeneral       = "General"
)

var categoryOrder = []string{
	CategoryConversations,
	CategoryServer,
	CategoryComposer,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of keyboard shortcuts. Entries
// appear in the help modal and can be run from it.
var ShortcutRegistry = []Shortcut{
	// Conversations
	{
		Key:         keys.NextConversation,
		Description: "Next conversation",
		Category:    CategoryConversations,
		Handler:     shortcutNextConversation,
	},
	{
		Key:         keys.PrevConversation,
		Description: "Previous conversation",
		Category:    CategoryConversations,
		Handler:     shortcutPrevConversation,
	},
	{
		Key:         keys.CtrlY,
		Description: "Copy last message",
		Category:    CategoryConversations,
		Handler:     shortcutCopyLast,
	},
	{
		Key:         keys.CtrlD,
		Description: "Dismiss notification",
		Category:    CategoryConversations,
		Handler:     shortcutDismiss,
		Condition:   func(m *Model) bool { return m.gate.Pending() || m.notice.Visible() },
	},

	// Server
	{
		Key:                keys.CtrlL,
		Description:        "Leaderboard",
		Category:           CategoryServer,
		RequiresConnection: true,
		Handler:            shortcutLeaderboard,
	},
	{
		Key:                keys.CtrlA,
		Description:        "Account",
		Category:           CategoryServer,
		RequiresConnection: true,
		Handler:            shortcutAccount,
	},
	{
		Key:                keys.CtrlK,
		Description:        "Connection info",
		Category:           CategoryServer,
		RequiresConnection: true,
		Handler:            shortcutConnectionInfo,
	},

	// Composer
	{
		Key:         keys.CtrlV,
		Description: "Paste",
		Category:    CategoryComposer,
		Handler:     shortcutPaste,
	},

	// General
	{
		Key:         keys.CtrlO,
		Description: "Colors and options",
		Category:    CategoryGeneral,
		Handler:     shortcutOptions,
	},
	{
		Key:         keys.CtrlT,
		Description: "Terms and conditions",
		Category:    CategoryGeneral,
		Handler:     shortcutTerms,
	},
	{
		Key:         keys.CtrlG,
		Description: "API guide",
		Category:    CategoryGeneral,
		Handler:     shortcutAPIGuide,
	},
	{
		Key:         keys.CtrlC,
		Description: "Quit",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// helpShortcut is defined separately to avoid initialization cycle.
// It references ShortcutRegistry, so it can't be in the registry itself.
var helpShortcut = Shortcut{
	Key:         "?",
	Description: "Show this help (empty composer)",
	Category:    CategoryGeneral,
}

// DisplayOnlyShortcuts are shown in help but not executable from the help modal.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "alt+→/←", Description: "Next / previous conversation", Category: CategoryConversations},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll conversation", Category: CategoryConversations},
	{DisplayKey: "Click tab", Description: "Focus conversation", Category: CategoryConversations},
	{DisplayKey: "Enter", Description: "Send message", Category: CategoryComposer},
	{DisplayKey: "/w user msg", Description: "Whisper from the Lobby", Category: CategoryComposer},
	{DisplayKey: "Mouse drag", Description: "Select text (auto-copies)", Category: CategoryComposer},
	{DisplayKey: "Esc", Description: "Clear selection / quit", Category: CategoryGeneral},
}

func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresConnection && !m.Connected() {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	if key == helpShortcut.Key {
		// "?" is ordinary text once the composer has content
		if !m.chat.InputEmpty() {
			return m, nil, false
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			logger.WithComponent("shortcut").Debug("guard failed", "key", key, "connected", m.Connected())
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections builds the help modal sections from the
// shortcuts usable right now.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range registry {
		if m.isShortcutApplicable(s) {
			add(s)
		}
	}
	add(helpShortcut)
	for _, s := range displayOnly {
		add(s)
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutNextConversation(m *Model) (tea.Model, tea.Cmd) {
	m.cycleConversation(1)
	return m, nil
}

func shortcutPrevConversation(m *Model) (tea.Model, tea.Cmd) {
	m.cycleConversation(-1)
	return m, nil
}

func shortcutCopyLast(m *Model) (tea.Model, tea.Cmd) {
	c, ok := m.router.Conversation(m.router.Focused())
	if !ok {
		return m, nil
	}
	last, ok := c.Last()
	if !ok {
		return m, m.ShowFlashWarning("Nothing to copy")
	}
	return m, tea.Batch(ui.CopyToClipboard(last.Line()), m.ShowFlashInfo("Copied last message"))
}

func shortcutDismiss(m *Model) (tea.Model, tea.Cmd) {
	m.dismissNotification()
	return m, nil
}

func shortcutLeaderboard(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewLeaderboardState(m.router.LocalUser()))
	return m, m.sendTask(taskLeaderboard, protocol.RequestLeaderboard)
}

func shortcutAccount(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewAccountState(m.router.LocalUser()))
	return m, nil
}

func shortcutConnectionInfo(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewConnectionInfoState(modals.ConnectionInfo{
		Username:    m.conn.Username(),
		Server:      m.conn.Server(),
		Transport:   m.transport(),
		LocalAddr:   m.conn.LocalAddr(),
		RemoteAddr:  m.conn.RemoteAddr(),
		ConnectedAt: m.conn.ConnectedAt(),
	}))
	return m, nil
}

func shortcutPaste(m *Model) (tea.Model, tea.Cmd) {
	return m, func() tea.Msg {
		text, err := clipboard.ReadText()
		if err != nil {
			return ui.ClipboardErrorMsg{Error: err}
		}
		return tea.PasteMsg{Content: text}
	}
}

func shortcutOptions(m *Model) (tea.Model, tea.Cmd) {
	m.showOptions(m.config.GetColors())
	return m, nil
}

func shortcutTerms(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewTextViewerState("Terms and Conditions", renderDoc(docs.Terms)))
	return m, nil
}

func shortcutAPIGuide(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewTextViewerState("API Guide", renderDoc(docs.API)))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewConfirmQuitState())
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	sections := m.getApplicableHelpSections(ShortcutRegistry, DisplayOnlyShortcuts)
	m.modal.Show(modals.NewHelpState(sections))
	return m, nil
}

// showOptions opens the options dialog seeded with colors.
func (m *Model) showOptions(colors config.Colors) {
	names := ui.ThemeNames()
	themes := make([]modals.ThemeOption, len(names))
	for i, name := range names {
		themes[i] = modals.ThemeOption{Key: string(name), Name: ui.GetTheme(name).Name}
	}
	m.modal.Show(modals.NewOptionsState(
		colors,
		m.config.GetNotificationsEnabled(),
		themes,
		string(ui.CurrentThemeName()),
		m.transport(),
	))
}

// cycleConversation moves focus by delta tabs.
func (m *Model) cycleConversation(delta int) {
	title := m.router.Cycle(delta)
	m.chat.SetFocusedConversation(title)
	m.refreshTabs()
}

// focusConversation focuses the tab titled title.
func (m *Model) focusConversation(title string) {
	if err := m.router.Focus(title); err != nil {
		logger.WithComponent("app").Debug("focus failed", "title", title, "error", err)
		return
	}
	m.chat.SetFocusedConversation(title)
	m.refreshTabs()
}

// renderDoc styles an embedded markdown document for the text viewer.
func renderDoc(content string) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary)

	var b strings.Builder
	for i, section := range docs.Parse(content) {
		if i > 0 {
			b.WriteString("\n")
		}
		if section.Title != "" {
			b.WriteString(title.Render(section.Title))
			b.WriteString("\n\n")
		}
		b.WriteString(ui.HighlightMarkdown(strings.TrimSpace(section.Body)))
		b.WriteString("\n")
	}
	return b.String()
}
