package modals

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"github.com/zhubert/parley/internal/keys"
)

const termsViewHeight = 12

// TermsState shows the terms and conditions with Accept/Decline buttons.
type TermsState struct {
	view     viewport.Model
	accepted bool
	form     *huh.Form
}

func (*TermsState) modalState() {}

func (*TermsState) Kind() Kind { return KindTerms }

func (s *TermsState) PreferredWidth() int { return ModalWidthWide }

func (s *TermsState) Title() string { return "Terms and Conditions" }

func (s *TermsState) Help() string {
	return "up/down: scroll  left/right: choose  Enter: confirm"
}

func (s *TermsState) Render() string {
	return renderDialog(s, s.view.View(), "", s.form.View())
}

func (s *TermsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case keys.Up, keys.Down, keys.PgUp, keys.PgDown, keys.Home, keys.End:
			var cmd tea.Cmd
			s.view, cmd = s.view.Update(msg)
			return s, cmd
		}
	}
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Accepted reports whether Accept is selected.
func (s *TermsState) Accepted() bool {
	return s.accepted
}

// NewTermsState creates the dialog around already rendered terms text.
func NewTermsState(text string) *TermsState {
	vp := viewport.New()
	vp.SetWidth(ModalWidthWide - 6)
	vp.SetHeight(termsViewHeight)
	vp.SetContent(text)

	s := &TermsState{view: vp}
	s.form = newForm(ModalWidthWide-6, huh.NewGroup(
		huh.NewConfirm().
			Title("Do you accept the terms?").
			Affirmative("Accept").
			Negative("Decline").
			Value(&s.accepted),
	))
	return s
}
