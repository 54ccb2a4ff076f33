package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindPermission, "permission denied"},
		{KindIO, "I/O error"},
		{KindNetwork, "network error"},
		{KindConfig, "configuration error"},
		{KindProtocol, "protocol error"},
		{KindAuth, "authentication failed"},
		{KindTimeout, "timeout"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "session.Send", Context: "write", Err: errors.New("broken pipe")},
			expected: "session.Send: write: broken pipe",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "session.Send", Err: errors.New("broken pipe")},
			expected: "session.Send: broken pipe",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("broken pipe")},
			expected: "broken pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE(t *testing.T) {
	tests := []struct {
		name     string
		args     []any
		wantOp   Op
		wantKind Kind
		wantErr  string
	}{
		{
			name:     "all args",
			args:     []any{Op("a.B"), KindNetwork, "context", errors.New("cause")},
			wantOp:   "a.B",
			wantKind: KindNetwork,
			wantErr:  "cause",
		},
		{
			name:     "context becomes error",
			args:     []any{Op("a.B"), KindInvalid, "just a message"},
			wantOp:   "a.B",
			wantKind: KindInvalid,
			wantErr:  "just a message",
		},
		{
			name:     "error only",
			args:     []any{errors.New("plain")},
			wantKind: KindUnknown,
			wantErr:  "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := E(tt.args...).(*Error)
			if !ok {
				t.Fatal("E() did not return *Error")
			}
			if e.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if e.Err.Error() != tt.wantErr {
				t.Errorf("Err = %q, want %q", e.Err, tt.wantErr)
			}
		})
	}
}

func TestIsAndGetKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		wantIs   bool
		wantKind Kind
	}{
		{"matching", AuthRejected("bad password"), KindAuth, true, KindAuth},
		{"different kind", AuthRejected("bad password"), KindNetwork, false, KindAuth},
		{"wrapped", fmt.Errorf("connect: %w", HandshakeTimeout("x:1")), KindTimeout, true, KindTimeout},
		{"plain error", errors.New("x"), KindUnknown, false, KindUnknown},
		{"nil", nil, KindNotFound, false, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.kind); got != tt.wantIs {
				t.Errorf("Is() = %v, want %v", got, tt.wantIs)
			}
			if got := GetKind(tt.err); got != tt.wantKind {
				t.Errorf("GetKind() = %v, want %v", got, tt.wantKind)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth uses server text", AuthRejected("Username taken"), "Username taken"},
		{"context preferred", DialFailed("host:1", errors.New("refused")), "could not reach host:1"},
		{"plain error", errors.New("boom"), "boom"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("cause")
	tests := []struct {
		name string
		err  error
		kind Kind
		wrap bool
	}{
		{"ConversationNotFound", ConversationNotFound("bob"), KindNotFound, false},
		{"ConfigLoadFailed", ConfigLoadFailed("/p", cause), KindConfig, true},
		{"ConfigSaveFailed", ConfigSaveFailed("/p", cause), KindConfig, true},
		{"ConfigInvalid", ConfigInvalid("bad color"), KindInvalid, false},
		{"DialFailed", DialFailed("h:1", cause), KindNetwork, true},
		{"NotConnected", NotConnected(), KindNetwork, false},
		{"MalformedLeaderboard", MalformedLeaderboard("x"), KindProtocol, false},
		{"InputInvalid", InputInvalid("username is required"), KindInvalid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Is(tt.err, tt.kind) {
				t.Errorf("kind = %v, want %v", GetKind(tt.err), tt.kind)
			}
			if tt.wrap && !errors.Is(tt.err, cause) {
				t.Error("underlying error not wrapped")
			}
		})
	}
}
