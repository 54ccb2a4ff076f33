package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const appTitle = " parley"

// Header is the top bar: the app name on the left, who is connected
// where on the right.
type Header struct {
	width     int
	user      string
	server    string
	connected bool
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetConnection records the logged-in user and server. An empty user
// means there is no live session.
func (h *Header) SetConnection(user, server string, connected bool) {
	h.user = user
	h.server = server
	h.connected = connected
}

func (h *Header) rightText() string {
	if h.user == "" {
		return "offline "
	}
	text := h.user + "@" + h.server
	if !h.connected {
		text += " (disconnected)"
	}
	return text + " "
}

// View renders the header
func (h *Header) View() string {
	right := h.rightText()
	paddingLen := h.width - runewidth.StringWidth(appTitle) - runewidth.StringWidth(right)
	if paddingLen < 0 {
		paddingLen = 0
	}
	content := appTitle + strings.Repeat(" ", paddingLen) + right
	return h.renderGradient(content, len([]rune(content))-len([]rune(right)))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content on a background fading from the theme's
// primary color into the main background. Runes from mutedFrom onward use
// the muted text color.
func (h *Header) renderGradient(content string, mutedFrom int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < len(appTitle))

		if i >= mutedFrom && h.user != "" && !h.connected {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
