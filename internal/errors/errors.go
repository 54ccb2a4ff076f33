// Package errors provides structured error types for parley.
// An Error records which operation failed and what kind of failure it was,
// so callers can decide how to present it without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindPermission
	KindIO
	KindNetwork
	KindConfig
	KindProtocol
	KindAuth
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindPermission:
		return "permission denied"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindProtocol:
		return "protocol error"
	case KindAuth:
		return "authentication failed"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for parley.
type Error struct {
	Op      Op
	Kind    Kind
	Err     error
	Context string
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an Error from any mix of Op, Kind, string (context) and error.
// With no error argument the context string becomes the error text.
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the innermost human-readable text of err: the server's
// wording for auth failures, the context for everything else.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Context != "" {
			return e.Context
		}
		return e.Err.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// Conversation errors
func ConversationNotFound(title string) error {
	return E(Op("router.Focus"), KindNotFound, fmt.Sprintf("no conversation titled %q", title))
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Session errors
func DialFailed(addr string, err error) error {
	return E(Op("session.Dial"), KindNetwork, fmt.Sprintf("could not reach %s", addr), err)
}

func AuthRejected(reason string) error {
	return E(Op("session.Connect"), KindAuth, reason)
}

func NotConnected() error {
	return E(Op("session.Send"), KindNetwork, "not connected")
}

func HandshakeTimeout(addr string) error {
	return E(Op("session.Connect"), KindTimeout, fmt.Sprintf("no reply from %s", addr))
}

// Protocol errors
func MalformedLeaderboard(entry string) error {
	return E(Op("protocol.ParseLeaderboard"), KindProtocol, fmt.Sprintf("malformed leaderboard entry %q", entry))
}

// Dialog errors
func InputInvalid(reason string) error {
	return E(Op("modals.Validate"), KindInvalid, reason)
}
