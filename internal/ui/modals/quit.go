package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
)

// ConfirmQuitState asks before leaving the chat.
type ConfirmQuitState struct {
	quit bool
	form *huh.Form
}

func (*ConfirmQuitState) modalState() {}

func (*ConfirmQuitState) Kind() Kind { return KindQuit }

func (s *ConfirmQuitState) Title() string { return "Quit parley?" }

func (s *ConfirmQuitState) Help() string { return "left/right: choose  Enter: confirm  Esc: stay" }

func (s *ConfirmQuitState) Render() string {
	return renderDialog(s, s.form.View())
}

func (s *ConfirmQuitState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Quit reports whether Quit is selected.
func (s *ConfirmQuitState) Quit() bool { return s.quit }

// NewConfirmQuitState creates the dialog with Quit preselected.
func NewConfirmQuitState() *ConfirmQuitState {
	s := &ConfirmQuitState{quit: true}
	s.form = newForm(ModalInputWidth, huh.NewGroup(
		huh.NewConfirm().
			Title("You will be logged out.").
			Affirmative("Quit").
			Negative("Stay").
			Value(&s.quit),
	))
	return s
}
