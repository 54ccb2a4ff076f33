package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/docs"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/protocol"
	"github.com/zhubert/parley/internal/ui"
	"github.com/zhubert/parley/internal/ui/modals"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		m.dismissNotification()
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		return m, nil

	case tea.PasteMsg:
		if m.modal.IsVisible() {
			_, cmd := m.modal.Update(msg)
			return m, cmd
		}
		m.chat.InsertInput(msg.Content)
		return m, nil

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}

	case StartupMsg:
		return m.handleStartup()

	case LineMsg:
		return m.handleLine(msg)

	case DisconnectedMsg:
		return m.handleDisconnected(msg)

	case TaskResultMsg:
		return m.handleTaskResult(msg)

	case ConfigChangedMsg:
		return m.handleConfigChanged(msg)

	case modals.LeaderboardRefreshMsg:
		return m, m.sendTask(taskLeaderboard, protocol.RequestLeaderboard)

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return m, ui.FlashTick()
		}
		return m, nil

	case ui.ClipboardErrorMsg:
		return m, m.ShowFlashWarning("Clipboard unavailable: " + msg.Error.Error())

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg:
		if m.modal.IsVisible() {
			return m, nil
		}
		return m, m.routeMouseEvents(msg)
	}

	if m.modal.IsVisible() {
		_, cmd := m.modal.Update(msg)
		return m, cmd
	}

	chat, cmd := m.chat.Update(msg)
	m.chat = chat
	return m, cmd
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the chat for handling.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	switch key {
	case keys.Escape:
		if m.chat.HasTextSelection() {
			m.chat.SelectionClear()
			return m, nil
		}
		return shortcutQuit(m)
	case keys.AltRight:
		return shortcutNextConversation(m)
	case keys.AltLeft:
		return shortcutPrevConversation(m)
	case keys.Enter:
		return m, m.sendComposer()
	}

	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	// not a shortcut: fall through to the composer and panes
	return nil, nil
}

// sendComposer sends the composer text to the focused conversation. Lines
// not starting with "/" are whispered when a private conversation is
// focused. Nothing is echoed locally; the server echoes what we send.
func (m *Model) sendComposer() tea.Cmd {
	text := strings.TrimSpace(m.chat.GetInput())
	if text == "" {
		return nil
	}
	if !m.Connected() {
		return m.showLocalError(perrors.NotConnected())
	}

	out := protocol.Outgoing(m.router.Focused(), text)
	m.chat.ClearInput()
	logger.WithConversation(m.router.Focused()).Debug("sending", "length", len(out))
	return m.sendTask(taskSend, out)
}

// handleStartup opens the terms dialog until they are accepted, then login.
func (m *Model) handleStartup() (tea.Model, tea.Cmd) {
	if !m.config.HasAgreedToTerms() {
		m.modal.Show(modals.NewTermsState(renderDoc(docs.Terms)))
		return m, nil
	}
	m.showLogin()
	return m, nil
}

// handleDisconnected tears down the session after the server side went away.
func (m *Model) handleDisconnected(msg DisconnectedMsg) (tea.Model, tea.Cmd) {
	if m.conn == nil || msg.conn != m.conn {
		return m, nil
	}
	reason := "connection closed"
	if msg.Err != nil {
		reason = "connection lost: " + perrors.Message(msg.Err)
	}
	logger.WithComponent("app").Warn("disconnected", "error", msg.Err)

	m.disconnect()
	res := m.router.Route(protocol.ServerName + "> /e " + reason)
	m.applyRouted(res)
	m.chat.SetInputFocused(false)
	m.showLogin()
	return m, m.ShowFlashError(reason)
}

// handleTaskResult finishes a background task.
func (m *Model) handleTaskResult(msg TaskResultMsg) (tea.Model, tea.Cmd) {
	switch msg.Name {
	case taskConnect:
		return m.handleConnectResult(msg)
	case taskChangePassword:
		if msg.Err == nil {
			return m, m.ShowFlashSuccess("Password change sent")
		}
	case taskDeleteAccount:
		if msg.Err == nil {
			return m, m.ShowFlashInfo("Account deletion sent")
		}
	}
	if msg.Err != nil {
		return m, m.showLocalError(msg.Err)
	}
	return m, nil
}

// handleConfigChanged applies a config file edited outside the app.
func (m *Model) handleConfigChanged(msg ConfigChangedMsg) (tea.Model, tea.Cmd) {
	listen := listenForConfig(m.configChanges)
	if msg.Config == nil {
		return m, listen
	}
	oldColors := m.config.GetColors()
	m.config = msg.Config

	restyle := false
	if theme := m.config.GetTheme(); theme != "" && theme != string(ui.CurrentThemeName()) {
		ui.SetThemeByName(theme)
		restyle = true
	}
	if colors := m.config.GetColors(); colors != oldColors {
		ui.SetMessageColors(colors)
		restyle = true
	}
	if restyle {
		m.restyle()
	}
	logger.WithComponent("app").Info("config reloaded", "path", m.config.Path())
	return m, listen
}
