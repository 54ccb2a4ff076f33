package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/keys"
)

// AccountAction is an entry of the account menu.
type AccountAction int

const (
	ActionChangePassword AccountAction = iota
	ActionDeleteAccount
	ActionLogOut
)

var accountActions = []string{
	"Change password",
	"Delete account",
	"Log out",
}

// AccountState is the account menu.
type AccountState struct {
	username string
	selected int
}

func (*AccountState) modalState() {}

func (*AccountState) Kind() Kind { return KindAccount }

func (s *AccountState) Title() string { return "Account: " + s.username }

func (s *AccountState) Help() string { return "up/down: navigate  Enter: select  Esc: close" }

func (s *AccountState) Render() string {
	return renderDialog(s, RenderSelectableList(accountActions, s.selected))
}

func (s *AccountState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case keys.Up, "k":
			if s.selected > 0 {
				s.selected--
			}
		case keys.Down, "j":
			if s.selected < len(accountActions)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

// Selected returns the highlighted action.
func (s *AccountState) Selected() AccountAction { return AccountAction(s.selected) }

// NewAccountState creates the menu for username.
func NewAccountState(username string) *AccountState {
	return &AccountState{username: username}
}

// ChangePasswordState asks for the current and a new password.
type ChangePasswordState struct {
	current string
	next    string
	confirm string
	form    *huh.Form
}

func (*ChangePasswordState) modalState() {}

func (*ChangePasswordState) Kind() Kind { return KindChangePassword }

func (s *ChangePasswordState) Title() string { return "Change Password" }

func (s *ChangePasswordState) Help() string { return "Tab: next field  Enter: change  Esc: cancel" }

func (s *ChangePasswordState) Render() string {
	return renderDialog(s, s.form.View())
}

func (s *ChangePasswordState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Current returns the current password as typed.
func (s *ChangePasswordState) Current() string { return s.current }

// New returns the new password as typed.
func (s *ChangePasswordState) New() string { return s.next }

// Validate checks that both passwords are present and confirmed.
func (s *ChangePasswordState) Validate() error {
	switch {
	case s.current == "":
		return perrors.InputInvalid("current password is required")
	case s.next == "":
		return perrors.InputInvalid("new password is required")
	case s.next != s.confirm:
		return perrors.InputInvalid("passwords do not match")
	case s.next == s.current:
		return perrors.InputInvalid("new password must differ from the current one")
	}
	return nil
}

// NewChangePasswordState creates the change password dialog.
func NewChangePasswordState() *ChangePasswordState {
	s := &ChangePasswordState{}
	s.form = newForm(ModalInputWidth, huh.NewGroup(
		huh.NewInput().
			Title("Current password").
			EchoMode(huh.EchoModePassword).
			CharLimit(ModalInputCharLimit).
			Value(&s.current),
		huh.NewInput().
			Title("New password").
			EchoMode(huh.EchoModePassword).
			CharLimit(ModalInputCharLimit).
			Value(&s.next),
		huh.NewInput().
			Title("Confirm new password").
			EchoMode(huh.EchoModePassword).
			CharLimit(ModalInputCharLimit).
			Value(&s.confirm),
	))
	return s
}

// DeleteAccountState asks for the password before deleting the account.
type DeleteAccountState struct {
	username string
	password string
	sure     bool
	form     *huh.Form
}

func (*DeleteAccountState) modalState() {}

func (*DeleteAccountState) Kind() Kind { return KindDeleteAccount }

func (s *DeleteAccountState) Title() string { return "Delete Account?" }

func (s *DeleteAccountState) Help() string { return "Tab: next field  Enter: delete  Esc: cancel" }

func (s *DeleteAccountState) Render() string {
	warning := StatusErrorStyle.Render("This permanently deletes " + s.username + " and its coins.")
	return renderDialog(s, warning, "", s.form.View())
}

func (s *DeleteAccountState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Password returns the password as typed.
func (s *DeleteAccountState) Password() string { return s.password }

// Validate requires a password and an explicit confirmation.
func (s *DeleteAccountState) Validate() error {
	if s.password == "" {
		return perrors.InputInvalid("password is required")
	}
	if !s.sure {
		return perrors.InputInvalid("confirm the deletion first")
	}
	return nil
}

// NewDeleteAccountState creates the delete account dialog.
func NewDeleteAccountState(username string) *DeleteAccountState {
	s := &DeleteAccountState{username: username}
	s.form = newForm(ModalInputWidth, huh.NewGroup(
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			CharLimit(ModalInputCharLimit).
			Value(&s.password),
		huh.NewConfirm().
			Title("Delete this account?").
			Affirmative("Delete").
			Negative("Keep").
			Value(&s.sure),
	))
	return s
}
