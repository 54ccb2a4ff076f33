// Package modals provides the dialog states shown over the chat.
// Each dialog implements ModalState with its own state struct, so the
// app reads typed values back out of the dialog it opened.
package modals

import (
	tea "charm.land/bubbletea/v2"
)

// Kind names a dialog. The window registry holds at most one open
// dialog per kind.
type Kind string

const (
	KindTerms          Kind = "terms"
	KindLogin          Kind = "login"
	KindAccount        Kind = "account"
	KindChangePassword Kind = "change-password"
	KindDeleteAccount  Kind = "delete-account"
	KindLeaderboard    Kind = "leaderboard"
	KindOptions        Kind = "options"
	KindTextViewer     Kind = "text-viewer"
	KindConnectionInfo Kind = "connection-info"
	KindHelp           Kind = "help"
	KindQuit           Kind = "quit"
)

// ModalState is a discriminated union interface for dialog state.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Kind() Kind
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// ModalWithPreferredWidth is implemented by dialogs wider than ModalWidth.
type ModalWithPreferredWidth interface {
	ModalState
	PreferredWidth() int
}

// ModalWithSize is implemented by dialogs that lay out to the screen size.
type ModalWithSize interface {
	ModalState
	SetSize(width, height int)
}

// HelpShortcut represents a single keyboard shortcut for display
type HelpShortcut struct {
	Key  string
	Desc string
}

// HelpSection represents a group of related shortcuts
type HelpSection struct {
	Title     string
	Shortcuts []HelpShortcut
}
