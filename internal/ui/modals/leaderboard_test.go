package modals

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/parley/internal/protocol"
)

func entries(n int) []protocol.Entry {
	out := make([]protocol.Entry, n)
	for i := range out {
		out[i] = protocol.Entry{Rank: i + 1, User: fmt.Sprintf("user%02d", i+1), Coins: (n - i) * 1000}
	}
	return out
}

func TestLeaderboardState_Loading(t *testing.T) {
	s := NewLeaderboardState("alice")
	if !s.Loading() {
		t.Fatal("new leaderboard should be loading")
	}
	if view := ansi.Strip(s.Render()); !strings.Contains(view, "Fetching") {
		t.Errorf("loading view = %q", view)
	}

	s.SetEntries(entries(3))
	if s.Loading() {
		t.Error("SetEntries should end loading")
	}
	if len(s.Entries()) != 3 {
		t.Errorf("Entries() = %d rows, want 3", len(s.Entries()))
	}
}

func TestLeaderboardState_Render(t *testing.T) {
	s := NewLeaderboardState("user02")
	s.SetEntries(entries(3))

	view := ansi.Strip(s.Render())
	for _, want := range []string{"Rank", "user01", "3,000", "user03"} {
		if !strings.Contains(view, want) {
			t.Errorf("leaderboard view missing %q", want)
		}
	}
}

func TestLeaderboardState_Empty(t *testing.T) {
	s := NewLeaderboardState("alice")
	s.SetEntries(nil)
	if view := ansi.Strip(s.Render()); !strings.Contains(view, "Nobody") {
		t.Errorf("empty view = %q", view)
	}
}

func TestLeaderboardState_Refresh(t *testing.T) {
	s := NewLeaderboardState("alice")
	s.SetEntries(entries(2))

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'u', Text: "u"})
	if cmd == nil {
		t.Fatal("u should request a refresh")
	}
	if _, ok := cmd().(LeaderboardRefreshMsg); !ok {
		t.Error("refresh command should emit LeaderboardRefreshMsg")
	}
	if !s.Loading() {
		t.Error("refresh should set loading")
	}
}

func TestLeaderboardState_Scroll(t *testing.T) {
	down := tea.KeyPressMsg{Code: tea.KeyDown}
	up := tea.KeyPressMsg{Code: tea.KeyUp}

	tests := []struct {
		name  string
		rows  int
		keys  []tea.Msg
		wantO int
	}{
		{"fits, no scroll", 5, []tea.Msg{down}, 0},
		{"scroll down", 15, []tea.Msg{down, down}, 2},
		{"clamped at end", 12, []tea.Msg{down, down, down, down}, 2},
		{"clamped at top", 15, []tea.Msg{up}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewLeaderboardState("alice")
			s.SetEntries(entries(tt.rows))
			for _, k := range tt.keys {
				s.Update(k)
			}
			if s.offset != tt.wantO {
				t.Errorf("offset = %d, want %d", s.offset, tt.wantO)
			}
		})
	}
}

func TestLeaderboardState_SetEntriesClampsOffset(t *testing.T) {
	s := NewLeaderboardState("alice")
	s.SetEntries(entries(20))
	s.offset = 10

	s.SetEntries(entries(12))
	if s.offset != 2 {
		t.Errorf("offset = %d, want 2", s.offset)
	}
}
