package modals

import (
	"fmt"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
)

// TextViewerState is a scrollable read-only document.
type TextViewerState struct {
	title string
	view  viewport.Model
}

func (*TextViewerState) modalState() {}

func (*TextViewerState) Kind() Kind { return KindTextViewer }

func (s *TextViewerState) PreferredWidth() int { return ModalWidthWide }

func (s *TextViewerState) Title() string { return s.title }

func (s *TextViewerState) Help() string {
	return fmt.Sprintf("up/down/pgup/pgdn: scroll (%3.f%%)  Esc: close", s.view.ScrollPercent()*100)
}

func (s *TextViewerState) Render() string {
	return renderDialog(s, s.view.View())
}

func (s *TextViewerState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.view, cmd = s.view.Update(msg)
	return s, cmd
}

// SetSize fits the document to the space the modal frame leaves.
func (s *TextViewerState) SetSize(width, height int) {
	// title and help lines with their margins
	const chrome = 4
	s.view.SetWidth(max(width, 1))
	s.view.SetHeight(max(height-chrome, 1))
}

// NewTextViewerState creates a viewer for already rendered content.
func NewTextViewerState(title, content string) *TextViewerState {
	vp := viewport.New()
	vp.SetWidth(ModalWidthWide - 6)
	vp.SetHeight(20)
	vp.SetContent(content)
	return &TextViewerState{title: title, view: vp}
}
