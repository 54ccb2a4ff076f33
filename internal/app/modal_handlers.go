package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/config"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/protocol"
	"github.com/zhubert/parley/internal/router"
	"github.com/zhubert/parley/internal/session"
	"github.com/zhubert/parley/internal/ui"
	"github.com/zhubert/parley/internal/ui/modals"
)

// handleModalKey handles key presses while a dialog is open. Only the
// top-most dialog sees them.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.Top().(type) {
	case *modals.TermsState:
		return m.handleTermsModal(key, msg, s)
	case *modals.LoginState:
		return m.handleLoginModal(key, msg, s)
	case *modals.AccountState:
		return m.handleAccountModal(key, msg, s)
	case *modals.ChangePasswordState:
		return m.handleChangePasswordModal(key, msg, s)
	case *modals.DeleteAccountState:
		return m.handleDeleteAccountModal(key, msg, s)
	case *modals.OptionsState:
		return m.handleOptionsModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	case *modals.ConfirmQuitState:
		return m.handleQuitModal(key, msg, s)
	}

	// leaderboard, text viewer and connection info only scroll and close
	switch key {
	case keys.Escape, keys.Enter:
		m.modal.Hide()
		return m, nil
	case keys.CtrlC:
		return shortcutQuit(m)
	}
	_, cmd := m.modal.Update(msg)
	return m, cmd
}

func (m *Model) forwardToModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.modal.Update(msg)
	return m, cmd
}

// quit closes the connection and leaves the program.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.Shutdown()
	return m, tea.Quit
}

// saveConfig persists the config, reporting failures as a flash.
func (m *Model) saveConfig() tea.Cmd {
	if err := m.config.Save(); err != nil {
		logger.WithComponent("app").Warn("saving config failed", "error", err)
		return m.ShowFlashWarning("Could not save settings: " + perrors.Message(err))
	}
	return nil
}

// =============================================================================
// Terms and login
// =============================================================================

func (m *Model) handleTermsModal(key string, msg tea.KeyPressMsg, s *modals.TermsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, keys.CtrlC:
		return m.quit()
	case keys.Enter:
		if !s.Accepted() {
			return m.quit()
		}
		m.config.SetAgreedToTerms(true)
		m.modal.Close(modals.KindTerms)
		m.showLogin()
		return m, m.saveConfig()
	}
	return m.forwardToModal(msg)
}

// showLogin opens the login dialog prefilled from flags and the saved login.
func (m *Model) showLogin() {
	saved := m.config.GetLogin()

	server := m.opts.Server
	if server == "" {
		server = saved.Server
	}
	if server == "" {
		server = config.DefaultServer
	}
	username := m.opts.Username
	if username == "" {
		username = saved.Username
	}

	m.modal.CloseAll()
	m.modal.Show(modals.NewLoginState(server, username, m.config.GetRememberMe(), saved.PasswordHash != ""))
}

func (m *Model) handleLoginModal(key string, msg tea.KeyPressMsg, s *modals.LoginState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, keys.CtrlC:
		return m.quit()
	case keys.Enter:
		if m.connecting {
			return m, nil
		}
		if err := s.Validate(); err != nil {
			m.modal.SetError(perrors.Message(err))
			return m, nil
		}

		saved := m.config.GetLogin()
		var hash string
		if s.UseSavedHash() {
			if saved.Username != s.Username() {
				m.modal.SetError("password is required")
				return m, nil
			}
			hash = saved.PasswordHash
		} else {
			hash = protocol.HashPassword(s.Password(), s.Username())
		}

		m.pending = &pendingLogin{
			info: config.LoginInfo{
				Server:       s.Server(),
				Username:     s.Username(),
				PasswordHash: hash,
			},
			remember:  s.Remember(),
			savedHash: s.UseSavedHash(),
		}
		m.connecting = true
		m.modal.SetError("")

		opts := session.Options{
			Server:       s.Server(),
			Transport:    m.transport(),
			Username:     s.Username(),
			PasswordHash: hash,
			Register:     s.Register(),
		}
		return m, tea.Batch(
			m.connectTask(opts),
			m.ShowFlashInfo(fmt.Sprintf("Connecting to %s...", opts.Server)),
		)
	}
	return m.forwardToModal(msg)
}

// connectTask dials and logs in off the update loop. The task's Value is
// the new Conn.
func (m *Model) connectTask(opts session.Options) tea.Cmd {
	dial := m.dial
	return runTask(taskConnect, connectTimeout, func(ctx context.Context) (any, error) {
		return dial(ctx, opts)
	})
}

// handleConnectResult switches to the chat once the server accepted the
// login, or reports why it did not.
func (m *Model) handleConnectResult(msg TaskResultMsg) (tea.Model, tea.Cmd) {
	m.connecting = false
	pending := m.pending
	m.pending = nil

	conn, _ := msg.Value.(Conn)
	if msg.Err != nil || conn == nil {
		err := msg.Err
		if err == nil {
			err = perrors.NotConnected()
		}
		text := perrors.Message(err)
		var saveCmd tea.Cmd
		// a remembered hash the server refused is stale; ask for the
		// password next time
		if perrors.GetKind(err) == perrors.KindAuth && pending != nil && pending.savedHash {
			m.config.ForgetPassword()
			saveCmd = m.saveConfig()
			m.showLogin()
		}
		if m.modal.IsOpen(modals.KindLogin) {
			m.modal.SetError(text)
		}
		return m, tea.Batch(saveCmd, m.ShowFlashError(text))
	}

	if m.conn != nil {
		m.disconnect()
	}
	m.conn = conn
	m.router = router.New(conn.Username())
	m.gate.Dismiss()
	m.syncConversations()
	m.header.SetConnection(conn.Username(), conn.Server(), true)
	logger.WithComponent("app").Info("logged in", "user", conn.Username(), "server", conn.Server())

	var saveCmd tea.Cmd
	if pending != nil {
		m.config.RememberLogin(pending.info, pending.remember)
		saveCmd = m.saveConfig()
	}

	m.modal.CloseAll()
	m.chat.SetInputFocused(true)

	return m, tea.Batch(
		listenForLines(conn),
		saveCmd,
		m.ShowFlashSuccess("Logged in as "+conn.Username()),
	)
}

// logout closes the session and returns to the login dialog.
func (m *Model) logout() (tea.Model, tea.Cmd) {
	m.disconnect()
	m.router = router.New("")
	m.gate.Dismiss()
	m.notice.Hide()
	m.syncConversations()
	m.chat.SetInputFocused(false)
	m.showLogin()
	m.updateSizes()
	return m, m.ShowFlashInfo("Logged out")
}

// =============================================================================
// Account
// =============================================================================

func (m *Model) handleAccountModal(key string, msg tea.KeyPressMsg, s *modals.AccountState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		switch s.Selected() {
		case modals.ActionChangePassword:
			m.modal.Show(modals.NewChangePasswordState())
		case modals.ActionDeleteAccount:
			m.modal.Show(modals.NewDeleteAccountState(m.router.LocalUser()))
		case modals.ActionLogOut:
			return m.logout()
		}
		return m, nil
	}
	return m.forwardToModal(msg)
}

func (m *Model) handleChangePasswordModal(key string, msg tea.KeyPressMsg, s *modals.ChangePasswordState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if err := s.Validate(); err != nil {
			m.modal.SetError(perrors.Message(err))
			return m, nil
		}
		if !m.Connected() {
			m.modal.SetError(perrors.Message(perrors.NotConnected()))
			return m, nil
		}
		user := m.router.LocalUser()
		line := protocol.ChangePassword(
			protocol.HashPassword(s.Current(), user),
			protocol.HashPassword(s.New(), user),
		)

		// the remembered hash is stale from now on
		m.config.ForgetPassword()
		m.modal.Close(modals.KindChangePassword)
		m.modal.Close(modals.KindAccount)
		return m, tea.Batch(m.sendTask(taskChangePassword, line), m.saveConfig())
	}
	return m.forwardToModal(msg)
}

func (m *Model) handleDeleteAccountModal(key string, msg tea.KeyPressMsg, s *modals.DeleteAccountState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if err := s.Validate(); err != nil {
			m.modal.SetError(perrors.Message(err))
			return m, nil
		}
		if !m.Connected() {
			m.modal.SetError(perrors.Message(perrors.NotConnected()))
			return m, nil
		}
		line := protocol.DeleteAccount(protocol.HashPassword(s.Password(), m.router.LocalUser()))

		m.config.ClearLogin()
		m.modal.Close(modals.KindDeleteAccount)
		m.modal.Close(modals.KindAccount)
		return m, tea.Batch(m.sendTask(taskDeleteAccount, line), m.saveConfig())
	}
	return m.forwardToModal(msg)
}

// =============================================================================
// Options
// =============================================================================

// defaultColors are the message colors ctrl+r restores.
var defaultColors = config.Colors{
	Whisper:  config.DefaultWhisperColor,
	Error:    config.DefaultErrorColor,
	Personal: config.DefaultPersonalColor,
}

func (m *Model) handleOptionsModal(key string, msg tea.KeyPressMsg, s *modals.OptionsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.CtrlR:
		m.showOptions(defaultColors)
		return m, nil
	case keys.Enter:
		if err := s.Validate(); err != nil {
			m.modal.SetError(perrors.Message(err))
			return m, nil
		}
		colors := s.Colors()
		if err := m.config.SetColors(colors); err != nil {
			m.modal.SetError(perrors.Message(err))
			return m, nil
		}
		m.config.SetNotificationsEnabled(s.NotificationsEnabled())
		m.config.SetTheme(s.Theme())
		m.config.SetTransport(s.Transport())

		if s.ThemeChanged() {
			ui.SetThemeByName(s.Theme())
		}
		ui.SetMessageColors(colors)
		m.restyle()
		m.modal.Close(modals.KindOptions)

		return m, tea.Batch(m.saveConfig(), m.ShowFlashSuccess("Options saved"))
	}
	return m.forwardToModal(msg)
}

// =============================================================================
// Help and quit
// =============================================================================

func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, s *modals.HelpState) (tea.Model, tea.Cmd) {
	// keys belong to the filter input while it is being typed
	if s.IsFiltering() {
		return m.forwardToModal(msg)
	}
	switch key {
	case keys.Escape, "?":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		sc := s.SelectedShortcut()
		m.modal.Hide()
		if sc == nil {
			return m, nil
		}
		if result, cmd, handled := m.ExecuteShortcut(sc.Key); handled {
			return result, cmd
		}
		return m, nil
	}
	return m.forwardToModal(msg)
}

func (m *Model) handleQuitModal(key string, msg tea.KeyPressMsg, s *modals.ConfirmQuitState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.CtrlC:
		return m.quit()
	case keys.Enter:
		if s.Quit() {
			return m.quit()
		}
		m.modal.Hide()
		return m, nil
	}
	return m.forwardToModal(msg)
}
