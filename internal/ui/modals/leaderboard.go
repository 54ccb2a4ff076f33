package modals

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/protocol"
)

// LeaderboardMaxVisible is how many rows fit before the table scrolls.
const LeaderboardMaxVisible = 10

// LeaderboardRefreshMsg asks the app to request a fresh leaderboard.
type LeaderboardRefreshMsg struct{}

// LeaderboardState shows the coin rankings pushed by the server.
type LeaderboardState struct {
	localUser string
	entries   []protocol.Entry
	loading   bool
	offset    int
}

func (*LeaderboardState) modalState() {}

func (*LeaderboardState) Kind() Kind { return KindLeaderboard }

func (s *LeaderboardState) Title() string { return "Leaderboard" }

func (s *LeaderboardState) Help() string {
	return "u: refresh  up/down: scroll  Esc: close"
}

func (s *LeaderboardState) Render() string {
	if s.loading && len(s.entries) == 0 {
		return renderDialog(s, muted("Fetching leaderboard..."))
	}
	if len(s.entries) == 0 {
		return renderDialog(s, muted("Nobody has any coins yet."))
	}

	header := lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true).
		Render(fmt.Sprintf("%-6s %-24s %12s", "Rank", "User", "Coins"))

	end := min(s.offset+LeaderboardMaxVisible, len(s.entries))
	rows := make([]string, 0, end-s.offset)
	for _, e := range s.entries[s.offset:end] {
		row := fmt.Sprintf("%-6d %-24s %12s", e.Rank, TruncateString(e.User, 24), humanize.Comma(int64(e.Coins)))
		style := ItemStyle
		if e.User == s.localUser {
			style = SelectedItemStyle
		}
		rows = append(rows, style.Render(row))
	}

	body := []string{header, strings.Join(rows, "\n")}
	if s.loading {
		body = append(body, muted("Refreshing..."))
	} else if len(s.entries) > LeaderboardMaxVisible {
		body = append(body, muted(fmt.Sprintf("%d-%d of %d", s.offset+1, end, len(s.entries))))
	}
	return renderDialog(s, body...)
}

func (s *LeaderboardState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "u":
		s.loading = true
		return s, func() tea.Msg { return LeaderboardRefreshMsg{} }
	case keys.Up, "k":
		if s.offset > 0 {
			s.offset--
		}
	case keys.Down, "j":
		if s.offset+LeaderboardMaxVisible < len(s.entries) {
			s.offset++
		}
	}
	return s, nil
}

// SetEntries replaces the table and ends the loading state.
func (s *LeaderboardState) SetEntries(entries []protocol.Entry) {
	s.entries = entries
	s.loading = false
	if s.offset+LeaderboardMaxVisible > len(entries) {
		s.offset = max(0, len(entries)-LeaderboardMaxVisible)
	}
}

// Entries returns the rows currently shown.
func (s *LeaderboardState) Entries() []protocol.Entry { return s.entries }

// Loading reports whether a refresh is outstanding.
func (s *LeaderboardState) Loading() bool { return s.loading }

// NewLeaderboardState creates the dialog in the loading state. localUser's
// row is highlighted once entries arrive.
func NewLeaderboardState(localUser string) *LeaderboardState {
	return &LeaderboardState{localUser: localUser, loading: true}
}
