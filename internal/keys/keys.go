// Package keys holds the key strings parley binds, as produced by
// tea.KeyPressMsg.String(). Comparing against these instead of literals
// keeps typos like "escape" vs "esc" out of the key handlers.
//
// Printable single characters ("?", "u", "y") are compared directly.
package keys

import tea "charm.land/bubbletea/v2"

func press(code rune, mod tea.KeyMod) string {
	return tea.KeyPressMsg{Code: code, Mod: mod}.String()
}

// Scrolling and composer editing
var (
	Up        = press(tea.KeyUp, 0)       // "up"
	Down      = press(tea.KeyDown, 0)     // "down"
	PgUp      = press(tea.KeyPgUp, 0)     // "pgup"
	PgDown    = press(tea.KeyPgDown, 0)   // "pgdown"
	Home      = press(tea.KeyHome, 0)     // "home"
	End       = press(tea.KeyEnd, 0)      // "end"
	Enter     = press(tea.KeyEnter, 0)    // "enter"
	Tab       = press(tea.KeyTab, 0)      // "tab"
	ShiftTab  = press(tea.KeyTab, tea.ModShift)
	Escape    = press(tea.KeyEscape, 0)   // "esc"
	Backspace = press(tea.KeyBackspace, 0)
)

// Conversation switching
var (
	NextConversation = press('n', tea.ModCtrl)       // "ctrl+n"
	PrevConversation = press('p', tea.ModCtrl)       // "ctrl+p"
	AltRight         = press(tea.KeyRight, tea.ModAlt) // "alt+right"
	AltLeft          = press(tea.KeyLeft, tea.ModAlt)  // "alt+left"
)

// Dialogs and actions
var (
	CtrlC = press('c', tea.ModCtrl) // quit
	CtrlV = press('v', tea.ModCtrl) // paste
	CtrlY = press('y', tea.ModCtrl) // copy last message
	CtrlD = press('d', tea.ModCtrl) // dismiss notification
	CtrlL = press('l', tea.ModCtrl) // leaderboard
	CtrlO = press('o', tea.ModCtrl) // options
	CtrlA = press('a', tea.ModCtrl) // account
	CtrlT = press('t', tea.ModCtrl) // terms and conditions
	CtrlG = press('g', tea.ModCtrl) // API guide
	CtrlK = press('k', tea.ModCtrl) // connection info
	CtrlR = press('r', tea.ModCtrl) // default colors in options
)
