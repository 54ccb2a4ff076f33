package modals

import (
	"testing"

	"github.com/zhubert/parley/internal/config"
)

func testColors() config.Colors {
	return config.Colors{Whisper: "#0051ff", Error: "#FF0000", Personal: "#33A314"}
}

func TestOptionsState_Values(t *testing.T) {
	themes := []ThemeOption{{Key: "nord", Name: "Nord"}, {Key: "light", Name: "Light"}}
	s := NewOptionsState(testColors(), true, themes, "nord", "tcp")

	if got := s.Colors().Whisper; got != "#0051FF" {
		t.Errorf("Colors().Whisper = %q, want upper-cased", got)
	}
	if !s.NotificationsEnabled() {
		t.Error("NotificationsEnabled() should reflect the input")
	}
	if s.Theme() != "nord" || s.ThemeChanged() {
		t.Error("theme should start unchanged")
	}
	if s.Transport() != "tcp" {
		t.Errorf("Transport() = %q", s.Transport())
	}

	s.theme = "light"
	if !s.ThemeChanged() {
		t.Error("ThemeChanged() should notice a new theme")
	}
}

func TestOptionsState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		whisper string
		wantErr bool
	}{
		{"valid", "#123ABC", false},
		{"lower case", "#abcdef", false},
		{"missing hash", "123ABC", true},
		{"short", "#123", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewOptionsState(testColors(), false, nil, "nord", "tcp")
			s.whisper = tt.whisper
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsState_PreferredWidth(t *testing.T) {
	s := NewOptionsState(testColors(), false, nil, "nord", "tcp")
	if s.PreferredWidth() != ModalWidthWide {
		t.Errorf("PreferredWidth() = %d, want %d", s.PreferredWidth(), ModalWidthWide)
	}
}
