package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/ui/modals"
)

// Modal is the dialog registry. It holds at most one open dialog per
// kind, stacked in opening order; only the top-most receives input.
type Modal struct {
	stack []modals.ModalState
	error string

	width, height int
}

// NewModal creates an empty registry
func NewModal() *Modal {
	return &Modal{}
}

// Show opens state on top. A dialog of the same kind that is already
// open is replaced.
func (m *Modal) Show(state modals.ModalState) {
	m.remove(state.Kind())
	m.stack = append(m.stack, state)
	m.error = ""
	m.sizeTop()
	logger.WithComponent("modal").Debug("opened", "kind", state.Kind(), "depth", len(m.stack))
}

// Hide closes the top-most dialog
func (m *Modal) Hide() {
	if len(m.stack) == 0 {
		return
	}
	top := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	m.error = ""
	logger.WithComponent("modal").Debug("closed", "kind", top.Kind(), "depth", len(m.stack))
}

// Close closes the dialog of the given kind wherever it sits.
func (m *Modal) Close(kind modals.Kind) {
	if m.remove(kind) {
		m.error = ""
	}
}

// CloseAll closes every dialog
func (m *Modal) CloseAll() {
	m.stack = nil
	m.error = ""
}

func (m *Modal) remove(kind modals.Kind) bool {
	for i, s := range m.stack {
		if s.Kind() == kind {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			return true
		}
	}
	return false
}

// Top returns the dialog receiving input, or nil
func (m *Modal) Top() modals.ModalState {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Get returns the open dialog of the given kind.
func (m *Modal) Get(kind modals.Kind) (modals.ModalState, bool) {
	for _, s := range m.stack {
		if s.Kind() == kind {
			return s, true
		}
	}
	return nil, false
}

// IsOpen reports whether a dialog of kind is open
func (m *Modal) IsOpen(kind modals.Kind) bool {
	_, ok := m.Get(kind)
	return ok
}

// IsVisible reports whether any dialog is open
func (m *Modal) IsVisible() bool {
	return len(m.stack) > 0
}

// Depth returns the number of open dialogs
func (m *Modal) Depth() int {
	return len(m.stack)
}

// SetError shows err under the top-most dialog
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// SetSize records the screen size and passes it to sized dialogs.
func (m *Modal) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.sizeTop()
}

func (m *Modal) sizeTop() {
	top := m.Top()
	if top == nil || m.width == 0 {
		return
	}
	if sized, ok := top.(modals.ModalWithSize); ok {
		// leave room for the frame's border and padding
		sized.SetSize(m.frameWidth(top)-6, m.height-8)
	}
}

func (m *Modal) frameWidth(s modals.ModalState) int {
	w := ModalWidth
	if p, ok := s.(modals.ModalWithPreferredWidth); ok {
		w = p.PreferredWidth()
	}
	if m.width > 0 && w > m.width-2 {
		w = m.width - 2
	}
	return w
}

// Update passes msg to the top-most dialog
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	top := m.Top()
	if top == nil {
		return m, nil
	}
	next, cmd := top.Update(msg)
	m.stack[len(m.stack)-1] = next
	return m, cmd
}

// View renders the top-most dialog centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	top := m.Top()
	if top == nil {
		return ""
	}

	content := top.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Width(m.frameWidth(top)).Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// RefreshModalStyles hands the current theme to the modals package.
func RefreshModalStyles() {
	modals.SetStyles(
		ModalTitleStyle,
		ModalHelpStyle,
		TabStyle,
		TabActiveStyle,
		StatusErrorStyle,
		modals.Palette{
			Primary:     ColorPrimary,
			Secondary:   ColorSecondary,
			Text:        ColorText,
			TextMuted:   ColorTextMuted,
			TextInverse: ColorTextInverse,
			Warning:     ColorWarning,
		},
		ModalInputWidth,
		ModalInputCharLimit,
		ModalWidth,
	)
}
