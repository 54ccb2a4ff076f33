// Package router decides which conversation each inbound chat line belongs
// to, how it is styled, and when conversations are opened or focused.
//
// A Router is not safe for concurrent use. It is meant to be driven from a
// single event loop; network goroutines hand lines to that loop instead of
// calling in directly.
package router

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/protocol"
)

// Lobby is the shared room present in every session.
const Lobby = protocol.Lobby

const (
	notesSeed   = "This is a private place to take notes."
	privateSeed = "This is your private chat with %s."
)

// Routed describes where a line went.
type Routed struct {
	Conversation string
	Message      Message
	// Created is set when routing opened a new conversation.
	Created bool
	// FocusChanged is set when routing moved focus.
	FocusChanged bool
	Payload      protocol.Payload
}

// Router holds the open conversations and the focused one.
type Router struct {
	local   string
	convs   map[string]*Conversation
	order   []string
	focused string

	now   func() time.Time
	newID func() string
	log   *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// WithIDs overrides message id generation.
func WithIDs(newID func() string) Option {
	return func(r *Router) { r.newID = newID }
}

// New returns a router for localUser with the Lobby focused and the
// local user's notes conversation open.
func New(localUser string, opts ...Option) *Router {
	r := &Router{
		local: localUser,
		convs: make(map[string]*Conversation),
		now:   time.Now,
		newID: uuid.NewString,
		log:   logger.WithComponent("router"),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.Ensure(Lobby)
	if localUser != "" && localUser != Lobby {
		notes, _ := r.Ensure(localUser)
		notes.append(r.message(protocol.ServerName, notesSeed, StyleNormal))
	}
	r.focused = Lobby
	return r
}

// LocalUser is the name this client is logged in as.
func (r *Router) LocalUser() string { return r.local }

// Focused returns the title of the conversation in view.
func (r *Router) Focused() string { return r.focused }

// Focus brings the conversation titled title into view and clears its
// unread count.
func (r *Router) Focus(title string) error {
	c, ok := r.convs[title]
	if !ok {
		return perrors.ConversationNotFound(title)
	}
	r.focused = title
	c.unread = 0
	return nil
}

// Cycle moves focus delta places through the conversations in creation
// order, wrapping at either end, and returns the new focus.
func (r *Router) Cycle(delta int) string {
	n := len(r.order)
	if n == 0 {
		return r.focused
	}
	i := 0
	for j, t := range r.order {
		if t == r.focused {
			i = j
			break
		}
	}
	i = ((i+delta)%n + n) % n
	_ = r.Focus(r.order[i])
	return r.focused
}

// Conversation looks up a conversation by title.
func (r *Router) Conversation(title string) (*Conversation, bool) {
	c, ok := r.convs[title]
	return c, ok
}

// Conversations returns all conversations in the order they were opened.
func (r *Router) Conversations() []*Conversation {
	out := make([]*Conversation, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.convs[t])
	}
	return out
}

// Ensure returns the conversation titled title, opening it if needed.
// Calling it again for the same title returns the same conversation.
func (r *Router) Ensure(title string) (*Conversation, bool) {
	if c, ok := r.convs[title]; ok {
		return c, false
	}
	c := &Conversation{title: title}
	r.convs[title] = c
	r.order = append(r.order, title)
	r.log.Debug("conversation opened", "title", title)
	return c, true
}

// Route parses and delivers one inbound line.
func (r *Router) Route(raw string) Routed {
	line := protocol.ParseLine(raw)
	return r.Deliver(line, protocol.Classify(line, r.local))
}

// RouteTo delivers raw straight into the conversation titled target,
// without looking for whisper or error markers. The conversation is opened
// if it does not exist.
func (r *Router) RouteTo(target, raw string) Routed {
	line := protocol.ParseLine(raw)
	_, created := r.Ensure(target)
	res := Routed{Conversation: target, Created: created, Payload: protocol.Plain{Body: line.Payload}}
	res.Message = r.appendTo(target, line.Sender, line.Payload, r.styleFor(line.Sender, StyleNormal))
	return res
}

// Deliver routes an already classified line. Callers that need to inspect
// the payload before routing (for example to intercept leaderboard pushes)
// classify once and hand the result here.
func (r *Router) Deliver(line protocol.Line, p protocol.Payload) Routed {
	res := Routed{Payload: p}
	body := line.Payload
	base := StyleNormal

	switch v := p.(type) {
	case protocol.Whisper:
		body = v.Body
		base = StyleWhisper
		switch {
		case v.Echo && v.To != "":
			res.Conversation = v.To
			res.Created, res.FocusChanged = r.openPrivate(v.To)
		case v.Echo, line.Sender == protocol.ServerName, line.Sender == "":
			// echoes without a destination and whispers without a peer
			// have no private conversation to go to
			res.Conversation = Lobby
		default:
			res.Conversation = line.Sender
			res.Created, res.FocusChanged = r.openPrivate(line.Sender)
		}
	case protocol.Error:
		body = v.Body
		base = StyleError
		// The error lands where the user was looking; focus then returns
		// to the Lobby.
		res.Conversation = r.focused
		if r.focused != Lobby {
			_ = r.Focus(Lobby)
			res.FocusChanged = true
		}
	default:
		res.Conversation = r.focused
	}

	res.Message = r.appendTo(res.Conversation, line.Sender, body, r.styleFor(line.Sender, base))
	return res
}

// openPrivate opens and focuses the private conversation with peer if it
// is new. Existing conversations are left alone.
func (r *Router) openPrivate(peer string) (created, focused bool) {
	c, created := r.Ensure(peer)
	if !created {
		return false, false
	}
	c.append(r.message(protocol.ServerName, fmt.Sprintf(privateSeed, peer), StyleNormal))
	_ = r.Focus(peer)
	return true, true
}

func (r *Router) styleFor(sender string, base Style) Style {
	if sender != "" && sender == r.local {
		return StyleSelf
	}
	return base
}

func (r *Router) appendTo(title, sender, body string, style Style) Message {
	c, _ := r.Ensure(title)
	m := r.message(sender, body, style)
	c.append(m)
	if title != r.focused {
		c.unread++
	}
	return m
}

func (r *Router) message(sender, body string, style Style) Message {
	return Message{
		ID:     r.newID(),
		Sender: sender,
		Body:   body,
		Time:   r.now(),
		Style:  style,
	}
}
