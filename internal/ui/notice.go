package ui

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Notice is the in-app banner mirroring the pending desktop notification.
type Notice struct {
	width int
	title string
	body  string
}

// NewNotice creates a hidden notice
func NewNotice() *Notice {
	return &Notice{}
}

// SetWidth sets the banner width
func (n *Notice) SetWidth(width int) {
	n.width = width
}

// Show displays title and body until Hide is called.
func (n *Notice) Show(title, body string) {
	n.title = title
	n.body = ansi.Strip(body)
}

// Hide removes the banner
func (n *Notice) Hide() {
	n.title = ""
	n.body = ""
}

// Visible reports whether the banner is showing
func (n *Notice) Visible() bool {
	return n.title != ""
}

// View renders the banner, or nothing when hidden
func (n *Notice) View() string {
	if !n.Visible() {
		return ""
	}
	const hint = "  (ctrl+d to dismiss)"
	text := n.title + ": " + n.body
	avail := n.width - runewidth.StringWidth(hint) - 2
	if avail > 0 {
		text = runewidth.Truncate(text, avail, "…")
	}
	return NoticeStyle.Width(n.width).Render(text + hint)
}
