package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestNewFooter(t *testing.T) {
	footer := NewFooter()
	if len(footer.bindings) == 0 {
		t.Error("expected default bindings")
	}
	if footer.HasFlash() {
		t.Error("expected no flash initially")
	}
}

func TestFooter_FlashExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	footer := NewFooter()
	footer.now = func() time.Time { return now }

	footer.SetFlash("Copied", FlashSuccess)
	if !footer.HasFlash() {
		t.Fatal("expected flash after SetFlash")
	}

	now = now.Add(FlashDuration - time.Second)
	if !footer.ClearIfExpired() {
		t.Error("flash should still show before FlashDuration passes")
	}

	now = now.Add(time.Second)
	if footer.ClearIfExpired() {
		t.Error("flash should be cleared once FlashDuration passes")
	}
	if footer.HasFlash() {
		t.Error("HasFlash should be false after expiry")
	}
}

func TestFooter_ClearIfExpired_NoFlash(t *testing.T) {
	footer := NewFooter()
	if footer.ClearIfExpired() {
		t.Error("ClearIfExpired with no flash should return false")
	}
}

func TestFooter_View(t *testing.T) {
	tests := []struct {
		name      string
		connected bool
		modalOpen bool
		flash     string
		want      []string
		notWant   []string
	}{
		{
			name:      "connected",
			connected: true,
			want:      []string{"send", "leaderboard", "help"},
		},
		{
			name:    "disconnected",
			want:    []string{"options", "terms", "quit"},
			notWant: []string{"leaderboard"},
		},
		{
			name:      "modal open",
			connected: true,
			modalOpen: true,
			want:      []string{"confirm", "close"},
			notWant:   []string{"leaderboard"},
		},
		{
			name:      "flash replaces hints",
			connected: true,
			flash:     "Saved options",
			want:      []string{"Saved options"},
			notWant:   []string{"leaderboard"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(200)
			footer.SetContext(tt.connected, tt.modalOpen)
			if tt.flash != "" {
				footer.SetFlash(tt.flash, FlashInfo)
			}

			view := ansi.Strip(footer.View())
			for _, w := range tt.want {
				if !strings.Contains(view, w) {
					t.Errorf("footer %q missing %q", view, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(view, w) {
					t.Errorf("footer %q should not contain %q", view, w)
				}
			}
		})
	}
}

func TestFooter_SetBindings(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(100)
	footer.SetContext(true, false)
	footer.SetBindings([]KeyBinding{{Key: "x", Desc: "custom"}})

	view := ansi.Strip(footer.View())
	if !strings.Contains(view, "custom") {
		t.Errorf("footer %q missing custom binding", view)
	}
}
