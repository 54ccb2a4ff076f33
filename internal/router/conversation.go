package router

import (
	"time"
)

// Style is how a message is rendered.
type Style int

const (
	StyleNormal Style = iota
	StyleWhisper
	StyleError
	StyleSelf
)

func (s Style) String() string {
	switch s {
	case StyleWhisper:
		return "whisper"
	case StyleError:
		return "error"
	case StyleSelf:
		return "self"
	default:
		return "normal"
	}
}

// Message is one chat line as displayed. Messages are values and never
// change after routing.
type Message struct {
	ID     string
	Sender string
	Body   string
	Time   time.Time
	Style  Style
}

// Line renders the message in wire form, "sender> body".
func (m Message) Line() string {
	if m.Sender == "" {
		return m.Body
	}
	return m.Sender + "> " + m.Body
}

// Conversation is one tab: an append-only log of messages.
type Conversation struct {
	title    string
	messages []Message
	unread   int
}

func (c *Conversation) Title() string { return c.title }

// Messages returns a copy of the log in arrival order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int { return len(c.messages) }

// Unread is the number of messages that arrived while another
// conversation had focus.
func (c *Conversation) Unread() int { return c.unread }

// Last returns the newest message.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

func (c *Conversation) append(m Message) {
	c.messages = append(c.messages, m)
}
