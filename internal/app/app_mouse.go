package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/ui"
)

// routeMouseEvents sends tab clicks to the tab strip and everything below
// it to the chat, shifted into the chat's coordinates.
func (m *Model) routeMouseEvents(msg tea.Msg) tea.Cmd {
	top := m.chatTop()

	switch mouse := msg.(type) {
	case tea.MouseClickMsg:
		if mouse.Y == ui.HeaderHeight && mouse.Button == tea.MouseLeft {
			if title, ok := m.tabs.TabAt(mouse.X); ok {
				m.focusConversation(title)
			}
			return nil
		}
		if mouse.Y < top {
			return nil
		}
		adjusted := mouse
		adjusted.Y -= top
		return m.updateChat(adjusted)

	case tea.MouseMotionMsg:
		adjusted := mouse
		adjusted.Y -= top
		return m.updateChat(adjusted)

	case tea.MouseReleaseMsg:
		adjusted := mouse
		adjusted.Y -= top
		return m.updateChat(adjusted)

	case tea.MouseWheelMsg:
		if mouse.Y < top {
			return nil
		}
		return m.updateChat(mouse)
	}
	return nil
}

func (m *Model) updateChat(msg tea.Msg) tea.Cmd {
	chat, cmd := m.chat.Update(msg)
	m.chat = chat
	return cmd
}
