package modals

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	perrors "github.com/zhubert/parley/internal/errors"
)

func TestLoginState_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		server   string
		username string
		password string
		confirm  string
		hasHash  bool
		wantErr  bool
	}{
		{name: "valid login", mode: modeLogin, server: "localhost:8989", username: "alice", password: "pw"},
		{name: "missing server", mode: modeLogin, server: "  ", username: "alice", password: "pw", wantErr: true},
		{name: "missing username", mode: modeLogin, server: "localhost:8989", password: "pw", wantErr: true},
		{name: "username with space", mode: modeLogin, server: "localhost:8989", username: "al ice", password: "pw", wantErr: true},
		{name: "missing password", mode: modeLogin, server: "localhost:8989", username: "alice", wantErr: true},
		{name: "saved hash covers blank password", mode: modeLogin, server: "localhost:8989", username: "alice", hasHash: true},
		{name: "register needs password", mode: modeRegister, server: "localhost:8989", username: "alice", hasHash: true, wantErr: true},
		{name: "register mismatch", mode: modeRegister, server: "localhost:8989", username: "alice", password: "a", confirm: "b", wantErr: true},
		{name: "register ok", mode: modeRegister, server: "localhost:8989", username: "alice", password: "a", confirm: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewLoginState(tt.server, tt.username, false, tt.hasHash)
			s.mode = tt.mode
			s.password = tt.password
			s.confirm = tt.confirm

			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !perrors.Is(err, perrors.KindInvalid) {
				t.Errorf("Validate() error kind = %v, want invalid", err)
			}
		})
	}
}

func TestLoginState_Accessors(t *testing.T) {
	s := NewLoginState(" chat.example.com:8989 ", " alice ", true, true)

	if s.Server() != "chat.example.com:8989" {
		t.Errorf("Server() = %q", s.Server())
	}
	if s.Username() != "alice" {
		t.Errorf("Username() = %q", s.Username())
	}
	if !s.Remember() {
		t.Error("Remember() should reflect the saved choice")
	}
	if !s.UseSavedHash() {
		t.Error("blank password with a saved hash should use the hash")
	}
	if s.Register() {
		t.Error("dialog should start in login mode")
	}
	if s.Title() != "Log In" {
		t.Errorf("Title() = %q", s.Title())
	}

	s.mode = modeRegister
	if s.UseSavedHash() {
		t.Error("registration never uses a saved hash")
	}
	if s.Title() != "Create Account" {
		t.Errorf("Title() = %q", s.Title())
	}
}

func TestLoginState_EnterIsLeftToCaller(t *testing.T) {
	s := NewLoginState("localhost:8989", "alice", false, false)
	next, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if next != s {
		t.Error("Update should return the same dialog")
	}
	if cmd != nil {
		t.Error("enter should not produce a form command")
	}
}
