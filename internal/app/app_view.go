package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/parley/internal/ui"
)

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height, m.notice.Visible())

	m.header.SetWidth(ctx.TerminalWidth)
	m.tabs.SetWidth(ctx.TerminalWidth)
	m.notice.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.chat.SetSize(ctx.TerminalWidth, ctx.ContentHeight)
	m.modal.SetSize(ctx.TerminalWidth, ctx.TerminalHeight)
}

// chatTop is the screen row where the chat pane starts.
func (m *Model) chatTop() int {
	top := ui.HeaderHeight + ui.TabsHeight
	if m.notice.Visible() {
		top += ui.NoticeHeight
	}
	return top
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true

	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current screen as a string.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Overlay modal if visible
	if m.modal.IsVisible() {
		m.footer.SetContext(m.Connected(), true)
		return m.modal.View(m.width, m.height)
	}

	m.footer.SetContext(m.Connected(), false)

	parts := []string{m.header.View(), m.tabs.View()}
	if m.notice.Visible() {
		parts = append(parts, m.notice.View())
	}
	parts = append(parts, m.chat.View(), m.footer.View())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
