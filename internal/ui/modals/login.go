package modals

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	perrors "github.com/zhubert/parley/internal/errors"
)

const (
	modeLogin    = "login"
	modeRegister = "register"
)

// LoginState collects server, credentials and the remember-me choice,
// either for logging in or for creating an account.
type LoginState struct {
	mode     string
	server   string
	username string
	password string
	confirm  string
	remember bool
	hasHash  bool

	form *huh.Form
}

func (*LoginState) modalState() {}

func (*LoginState) Kind() Kind { return KindLogin }

func (s *LoginState) Title() string {
	if s.Register() {
		return "Create Account"
	}
	return "Log In"
}

func (s *LoginState) Help() string {
	if s.hasHash && !s.Register() {
		return "Tab: next field  Enter: connect (blank password uses the saved one)  Esc: quit"
	}
	return "Tab: next field  Enter: connect  Esc: quit"
}

func (s *LoginState) Render() string {
	return renderDialog(s, s.form.View())
}

func (s *LoginState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Register reports whether the dialog is in account-creation mode.
func (s *LoginState) Register() bool { return s.mode == modeRegister }

// Server returns the trimmed server address.
func (s *LoginState) Server() string { return strings.TrimSpace(s.server) }

// Username returns the trimmed username.
func (s *LoginState) Username() string { return strings.TrimSpace(s.username) }

// Password returns the password as typed.
func (s *LoginState) Password() string { return s.password }

// Remember reports whether the login should be saved.
func (s *LoginState) Remember() bool { return s.remember }

// UseSavedHash reports whether the saved password hash should be used
// instead of a typed password.
func (s *LoginState) UseSavedHash() bool {
	return s.hasHash && !s.Register() && s.password == ""
}

// Validate checks the fields before a connect attempt.
func (s *LoginState) Validate() error {
	switch {
	case s.Server() == "":
		return perrors.InputInvalid("server is required")
	case s.Username() == "":
		return perrors.InputInvalid("username is required")
	case strings.ContainsAny(s.Username(), " \t"):
		return perrors.InputInvalid("username cannot contain spaces")
	case s.password == "" && !s.UseSavedHash():
		return perrors.InputInvalid("password is required")
	case s.Register() && s.password != s.confirm:
		return perrors.InputInvalid("passwords do not match")
	}
	return nil
}

// NewLoginState creates the dialog prefilled from a saved login. hasHash
// tells it a password hash was remembered for that user.
func NewLoginState(server, username string, remember, hasHash bool) *LoginState {
	s := &LoginState{
		mode:     modeLogin,
		server:   server,
		username: username,
		remember: remember,
		hasHash:  hasHash,
	}

	s.form = newForm(ModalInputWidth,
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Mode").
				Options(
					huh.NewOption("Log in", modeLogin),
					huh.NewOption("Create account", modeRegister),
				).
				Inline(true).
				Value(&s.mode),
			huh.NewInput().
				Title("Server").
				Placeholder("localhost:8989").
				CharLimit(ModalInputCharLimit).
				Value(&s.server),
			huh.NewInput().
				Title("Username").
				CharLimit(ModalInputCharLimit).
				Value(&s.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(ModalInputCharLimit).
				Value(&s.password),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				CharLimit(ModalInputCharLimit).
				Value(&s.confirm),
		).WithHideFunc(func() bool { return s.mode != modeRegister }),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Remember me").
				Affirmative("Yes").
				Negative("No").
				Value(&s.remember),
		),
	)
	return s
}
