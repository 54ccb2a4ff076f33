package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestNotice_ShowHide(t *testing.T) {
	n := NewNotice()
	n.SetWidth(80)

	if n.Visible() || n.View() != "" {
		t.Fatal("new notice should be hidden")
	}

	n.Show("Whisper from bob", "\x1b[1mhi\x1b[0m there")
	if !n.Visible() {
		t.Fatal("notice should be visible after Show")
	}
	view := ansi.Strip(n.View())
	for _, want := range []string{"Whisper from bob", "hi there", "ctrl+d"} {
		if !strings.Contains(view, want) {
			t.Errorf("notice %q missing %q", view, want)
		}
	}

	n.Hide()
	if n.Visible() {
		t.Error("notice should be hidden after Hide")
	}
}

func TestNotice_TruncatesLongBody(t *testing.T) {
	n := NewNotice()
	n.SetWidth(50)
	n.Show("Lobby", strings.Repeat("word ", 40))

	view := ansi.Strip(n.View())
	if !strings.Contains(view, "…") {
		t.Errorf("long notice should be truncated: %q", view)
	}
	if !strings.Contains(view, "ctrl+d to dismiss") {
		t.Errorf("dismiss hint should survive truncation: %q", view)
	}
}
