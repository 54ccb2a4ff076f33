package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestHeader_View(t *testing.T) {
	tests := []struct {
		name      string
		user      string
		server    string
		connected bool
		want      string
		notWant   string
	}{
		{
			name:    "offline",
			want:    "offline",
			notWant: "@",
		},
		{
			name:      "connected",
			user:      "alice",
			server:    "chat.example.com",
			connected: true,
			want:      "alice@chat.example.com",
			notWant:   "disconnected",
		},
		{
			name:   "dropped",
			user:   "alice",
			server: "chat.example.com",
			want:   "(disconnected)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeader()
			h.SetWidth(80)
			h.SetConnection(tt.user, tt.server, tt.connected)

			view := ansi.Strip(h.View())
			if !strings.Contains(view, "parley") {
				t.Errorf("header missing app title: %q", view)
			}
			if !strings.Contains(view, tt.want) {
				t.Errorf("header = %q, want it to contain %q", view, tt.want)
			}
			if tt.notWant != "" && strings.Contains(view, tt.notWant) {
				t.Errorf("header = %q, should not contain %q", view, tt.notWant)
			}
		})
	}
}

func TestHeader_ViewFillsWidth(t *testing.T) {
	h := NewHeader()
	h.SetWidth(60)
	h.SetConnection("bob", "localhost", true)

	if got := ansi.StringWidth(h.View()); got != 60 {
		t.Errorf("header width = %d, want 60", got)
	}
}
