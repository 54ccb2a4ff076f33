package modals

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
)

// ConnectionInfo is what the connection dialog displays.
type ConnectionInfo struct {
	Username    string
	Server      string
	Transport   string
	LocalAddr   string
	RemoteAddr  string
	ConnectedAt time.Time
}

// ConnectionInfoState shows the live session's endpoints.
type ConnectionInfoState struct {
	info ConnectionInfo
	now  func() time.Time
}

func (*ConnectionInfoState) modalState() {}

func (*ConnectionInfoState) Kind() Kind { return KindConnectionInfo }

func (s *ConnectionInfoState) Title() string { return "Connection" }

func (s *ConnectionInfoState) Help() string { return "Esc: close" }

func (s *ConnectionInfoState) Render() string {
	label := lipgloss.NewStyle().Foreground(ColorTextMuted).Width(12)
	value := lipgloss.NewStyle().Foreground(ColorText)

	since := "-"
	if !s.info.ConnectedAt.IsZero() {
		since = humanize.RelTime(s.info.ConnectedAt, s.now(), "ago", "from now")
	}

	rows := [][2]string{
		{"User", s.info.Username},
		{"Server", s.info.Server},
		{"Transport", s.info.Transport},
		{"Local", s.info.LocalAddr},
		{"Remote", s.info.RemoteAddr},
		{"Connected", since},
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%s%s", label.Render(r[0]), value.Render(r[1]))
	}
	return renderDialog(s, strings.Join(lines, "\n"))
}

func (s *ConnectionInfoState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewConnectionInfoState creates the dialog for info.
func NewConnectionInfoState(info ConnectionInfo) *ConnectionInfoState {
	return &ConnectionInfoState{info: info, now: time.Now}
}
