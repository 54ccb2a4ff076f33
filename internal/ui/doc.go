// Package ui provides the terminal components of the Parley chat client.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Tabs (1 line, one per conversation)                 │
//	├─────────────────────────────────────────────────────┤
//	│ Notice (1 line, only while a notice is shown)       │
//	├─────────────────────────────────────────────────────┤
//	│                                                     │
//	│   Chat pane for the focused conversation            │
//	│                                                     │
//	├─────────────────────────────────────────────────────┤
//	│   Composer                                          │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext holds the terminal size and derives the content height.
// All size calculations go through it.
//
// Header shows the client name and the signed in user and server.
//
// Tabs lists conversations in creation order, with an unread count on
// conversations that are not focused.
//
// Chat keeps one scrollback pane per conversation. Switching tabs keeps
// each pane's scroll offset, and only the focused pane follows new
// messages while it is already at the bottom.
//
// Footer shows key hints, or a flash message that expires on its own.
//
// Modal is the dialog registry. Dialog implementations live in the
// modals subpackage.
//
// # Styling
//
// Colors come from the active Theme. SetTheme regenerates every style
// variable and pushes the new palette to the modals package. Message body
// colors for whispers, errors and the user's own lines are configured
// separately through SetMessageColors.
package ui
