// Package protocol implements the line format spoken with the chat server.
//
// Every inbound line has the shape "<sender>> <payload>". A handful of
// payload prefixes carry meaning of their own (whispers, server errors,
// leaderboard pushes); Classify turns them into a tagged Payload once, so
// nothing downstream has to look at prefixes again.
package protocol

import (
	"strings"
)

// ServerName is the sender name the server uses for its own lines.
const ServerName = "Server"

// DefaultPort is the port chat servers listen on unless told otherwise.
const DefaultPort = 8989

const (
	separator     = ">"
	whisperPrefix = "/w "
	echoPrefix    = "/w To:"
	errorPrefix   = "/e "
	boardPrefix   = "/lb "
)

// Line is one inbound line split into sender and payload.
type Line struct {
	Sender  string
	Payload string
}

// ParseLine splits raw at the first '>'. One space after the separator is
// dropped. A line with no separator has an empty sender and the whole line
// as payload; nothing is ever rejected.
func ParseLine(raw string) Line {
	raw = strings.TrimRight(raw, "\r\n")
	sender, payload, ok := strings.Cut(raw, separator)
	if !ok {
		return Line{Payload: raw}
	}
	return Line{Sender: sender, Payload: strings.TrimPrefix(payload, " ")}
}

// String renders the line back into wire form.
func (l Line) String() string {
	if l.Sender == "" {
		return l.Payload
	}
	return l.Sender + separator + " " + l.Payload
}

// FromServer reports whether the server itself sent the line.
func (l Line) FromServer() bool {
	return l.Sender == ServerName
}

// Payload is the classified content of a line. It is one of Plain,
// Whisper, Error or Leaderboard.
type Payload interface {
	// Text is the display text with any control prefix removed.
	Text() string
	payload()
}

// Plain is an ordinary chat line.
type Plain struct {
	Body string
}

// Whisper is a private message. Echo is set when the line is the server
// repeating one of our own outgoing whispers back to us; To is only
// meaningful then.
type Whisper struct {
	From string
	To   string
	Body string
	Echo bool
}

// Error is a server-pushed error message.
type Error struct {
	Body string
}

// Leaderboard is a server push of the coin standings.
type Leaderboard struct {
	Entries []Entry
	Raw     string
}

func (p Plain) Text() string       { return p.Body }
func (p Whisper) Text() string     { return p.Body }
func (p Error) Text() string       { return p.Body }
func (p Leaderboard) Text() string { return p.Raw }

func (Plain) payload()       {}
func (Whisper) payload()     {}
func (Error) payload()       {}
func (Leaderboard) payload() {}

// Classify interprets a line's payload. localUser is needed to tell our own
// whisper echoes apart from inbound whispers.
func Classify(l Line, localUser string) Payload {
	p := l.Payload
	switch {
	case strings.HasPrefix(p, whisperPrefix):
		if l.Sender == localUser && strings.HasPrefix(p, echoPrefix) {
			dest, body, _ := strings.Cut(strings.TrimPrefix(p, echoPrefix), " ")
			return Whisper{From: l.Sender, To: dest, Body: body, Echo: true}
		}
		return Whisper{From: l.Sender, To: localUser, Body: strings.TrimPrefix(p, whisperPrefix)}
	case l.FromServer() && strings.HasPrefix(p, errorPrefix):
		return Error{Body: strings.TrimPrefix(p, errorPrefix)}
	case l.FromServer() && strings.HasPrefix(p, boardPrefix):
		raw := strings.TrimPrefix(p, boardPrefix)
		entries, err := ParseLeaderboard(raw)
		if err != nil {
			// Not a standings push after all; show it as chat.
			return Plain{Body: p}
		}
		return Leaderboard{Entries: entries, Raw: raw}
	default:
		return Plain{Body: p}
	}
}
