package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// FlashDuration is how long a flash message stays in the footer.
const FlashDuration = 4 * time.Second

// FlashType selects the color of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashTickMsg drives the flash auto-dismiss timer.
type FlashTickMsg time.Time

// FlashTick returns a command that checks for flash expiry after a second.
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width     int
	bindings  []KeyBinding
	connected bool
	modalOpen bool

	flashText    string
	flashType    FlashType
	flashExpires time.Time
	now          func() time.Time
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "ctrl+n/p", Desc: "switch chat"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+l", Desc: "leaderboard"},
			{Key: "ctrl+o", Desc: "options"},
			{Key: "?", Desc: "help"},
			{Key: "ctrl+c", Desc: "quit"},
		},
		now: time.Now,
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(connected, modalOpen bool) {
	f.connected = connected
	f.modalOpen = modalOpen
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows text in place of the key hints until FlashDuration passes.
func (f *Footer) SetFlash(text string, kind FlashType) {
	f.flashText = text
	f.flashType = kind
	f.flashExpires = f.now().Add(FlashDuration)
}

// HasFlash reports whether a flash message is showing.
func (f *Footer) HasFlash() bool {
	return f.flashText != ""
}

// ClearIfExpired drops an expired flash and reports whether one is still showing.
func (f *Footer) ClearIfExpired() bool {
	if f.flashText == "" {
		return false
	}
	if !f.now().Before(f.flashExpires) {
		f.flashText = ""
		return false
	}
	return true
}

func (f *Footer) flashView() string {
	style := FooterFlashStyle
	switch f.flashType {
	case FlashError:
		style = FooterFlashErrorStyle
	case FlashWarning:
		style = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	case FlashInfo:
		style = lipgloss.NewStyle().Foreground(ColorInfo)
	}
	return style.Render(f.flashText)
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashText != "" {
		return FooterStyle.Width(f.width).Render(f.flashView())
	}

	bindings := f.bindings
	switch {
	case f.modalOpen:
		bindings = []KeyBinding{
			{Key: "enter", Desc: "confirm"},
			{Key: "tab", Desc: "next field"},
			{Key: "esc", Desc: "close"},
		}
	case !f.connected:
		bindings = []KeyBinding{
			{Key: "ctrl+o", Desc: "options"},
			{Key: "ctrl+t", Desc: "terms"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}

	var parts []string
	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}
	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
