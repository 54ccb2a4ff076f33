package app

import (
	tea "charm.land/bubbletea/v2"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/notification"
	"github.com/zhubert/parley/internal/protocol"
	"github.com/zhubert/parley/internal/router"
	"github.com/zhubert/parley/internal/ui/modals"
)

// noticeSummaryLen caps the body shown in notifications.
const noticeSummaryLen = 120

// handleLine routes one server line and keeps listening.
func (m *Model) handleLine(msg LineMsg) (tea.Model, tea.Cmd) {
	if msg.conn != m.conn {
		// left over from a connection that has since been closed
		return m, nil
	}
	listen := listenForLines(m.conn)

	line := protocol.ParseLine(msg.Line)
	payload := protocol.Classify(line, m.router.LocalUser())

	// standings feed the leaderboard dialog instead of a conversation
	if lb, ok := payload.(protocol.Leaderboard); ok {
		if s, open := m.modal.Get(modals.KindLeaderboard); open {
			s.(*modals.LeaderboardState).SetEntries(lb.Entries)
			return m, listen
		}
	}

	res := m.router.Deliver(line, payload)
	m.applyRouted(res)
	return m, tea.Batch(listen, m.notify(res))
}

// applyRouted mirrors a routing result into the chat panes and tabs.
func (m *Model) applyRouted(res router.Routed) {
	if res.Created {
		// a new conversation may carry a seed message ahead of this one
		if c, ok := m.router.Conversation(res.Conversation); ok {
			for _, msg := range c.Messages() {
				m.chat.Append(res.Conversation, msg)
			}
		}
	} else {
		m.chat.Append(res.Conversation, res.Message)
	}

	if res.FocusChanged {
		m.chat.SetFocusedConversation(m.router.Focused())
		if res.Created {
			m.chat.ScrollToBottom()
		}
	}
	m.refreshTabs()
}

// showLocalError renders a client-side failure the way the server
// renders its own errors.
func (m *Model) showLocalError(err error) tea.Cmd {
	text := perrors.Message(err)
	res := m.router.Route(protocol.ServerName + "> /e " + text)
	m.applyRouted(res)
	return m.ShowFlashError(text)
}

// notify raises at most one pending notification for a routed message.
func (m *Model) notify(res router.Routed) tea.Cmd {
	if !m.gate.Offer(m.windowFocused, m.config.GetNotificationsEnabled()) {
		return nil
	}

	msg := res.Message
	title := notification.Title(notificationKind(msg.Style), msg.Sender)
	body := notification.Summary(msg.Body, noticeSummaryLen)

	m.notice.Show(title, body)
	m.updateSizes()

	return func() tea.Msg {
		if err := notification.Send(title, body); err != nil {
			logger.WithComponent("app").Debug("desktop notification failed", "error", err)
		}
		return nil
	}
}

// dismissNotification clears the pending notification and its banner.
func (m *Model) dismissNotification() {
	if !m.gate.Pending() && !m.notice.Visible() {
		return
	}
	m.gate.Dismiss()
	m.notice.Hide()
	m.updateSizes()
}

func notificationKind(s router.Style) notification.Kind {
	switch s {
	case router.StyleWhisper:
		return notification.KindWhisper
	case router.StyleError:
		return notification.KindError
	case router.StyleSelf:
		return notification.KindSelf
	default:
		return notification.KindMessage
	}
}
