// Package app is the Bubble Tea model tying the conversation router, the
// server session and the ui components together.
package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/notification"
	"github.com/zhubert/parley/internal/router"
	"github.com/zhubert/parley/internal/session"
	"github.com/zhubert/parley/internal/ui"
)

// Conn is the live server connection as the app uses it. *session.Session
// satisfies it; tests substitute a fake.
type Conn interface {
	Lines() <-chan string
	Err() error
	Send(ctx context.Context, text string) error
	Close() error
	Username() string
	Server() string
	ConnectedAt() time.Time
	LocalAddr() string
	RemoteAddr() string
}

// DialFunc opens a logged-in connection.
type DialFunc func(ctx context.Context, opts session.Options) (Conn, error)

func dialSession(ctx context.Context, opts session.Options) (Conn, error) {
	s, err := session.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Options are start-up overrides, usually from command line flags.
type Options struct {
	Server    string
	Username  string
	Transport string

	// Dial replaces session.Connect.
	Dial DialFunc
}

// connectTimeout bounds dialing plus the login handshake.
const connectTimeout = 15 * time.Second

// sendTimeout bounds a single outbound line.
const sendTimeout = 5 * time.Second

// Model is the main Bubble Tea model
type Model struct {
	config *config.Config
	opts   Options
	dial   DialFunc

	header *ui.Header
	footer *ui.Footer
	tabs   *ui.Tabs
	chat   *ui.Chat
	notice *ui.Notice
	modal  *ui.Modal

	router *router.Router
	conn   Conn
	gate   notification.Gate

	width         int
	height        int
	windowFocused bool
	connecting    bool

	// login being attempted, saved once the server accepts it
	pending *pendingLogin

	configChanges chan *config.Config
	stopWatch     context.CancelFunc
}

type pendingLogin struct {
	info      config.LoginInfo
	remember  bool
	// savedHash is set when the password hash came from the config.
	savedHash bool
}

// StartupMsg opens the first dialog once the program is running.
type StartupMsg struct{}

// LineMsg carries one line read from the server.
type LineMsg struct {
	Line string
	conn Conn
}

// DisconnectedMsg reports that the connection's line stream ended.
type DisconnectedMsg struct {
	Err  error
	conn Conn
}

// ConfigChangedMsg carries a config reloaded after an external edit.
type ConfigChangedMsg struct {
	Config *config.Config
}

// New creates the app model. Nothing connects until the user logs in.
func New(cfg *config.Config, opts Options) *Model {
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}
	ui.SetMessageColors(cfg.GetColors())

	dial := opts.Dial
	if dial == nil {
		dial = dialSession
	}

	m := &Model{
		config:        cfg,
		opts:          opts,
		dial:          dial,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		tabs:          ui.NewTabs(),
		chat:          ui.NewChat(),
		notice:        ui.NewNotice(),
		modal:         ui.NewModal(),
		router:        router.New(""),
		windowFocused: true,
		configChanges: make(chan *config.Config, 1),
	}
	m.syncConversations()
	return m
}

// Init starts the config watcher and opens the first dialog.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return StartupMsg{} },
		m.startConfigWatch(),
	)
}

// Connected reports whether a server session is live.
func (m *Model) Connected() bool {
	return m.conn != nil
}

// Shutdown closes the connection and stops background work. It is safe
// to call more than once.
func (m *Model) Shutdown() {
	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
	m.disconnect()
}

func (m *Model) disconnect() {
	if m.conn == nil {
		return
	}
	if err := m.conn.Close(); err != nil {
		logger.WithComponent("app").Debug("close failed", "error", err)
	}
	m.conn = nil
	m.header.SetConnection("", "", false)
}

// transport picks the flag override, then the saved preference.
func (m *Model) transport() string {
	if m.opts.Transport != "" {
		return m.opts.Transport
	}
	if t := m.config.GetTransport(); t != "" {
		return t
	}
	return config.DefaultTransport
}

// syncConversations rebuilds the chat panes and tabs from the router.
func (m *Model) syncConversations() {
	m.chat.Clear()
	for _, c := range m.router.Conversations() {
		for _, msg := range c.Messages() {
			m.chat.Append(c.Title(), msg)
		}
	}
	m.chat.SetFocusedConversation(m.router.Focused())
	m.chat.ScrollToBottom()
	m.refreshTabs()
}

// restyle redraws everything after a theme or color change without
// touching conversation contents or scroll positions.
func (m *Model) restyle() {
	m.chat.Restyle()
	m.refreshTabs()
}

func (m *Model) refreshTabs() {
	convs := m.router.Conversations()
	items := make([]ui.TabItem, len(convs))
	for i, c := range convs {
		items[i] = ui.TabItem{Title: c.Title(), Unread: c.Unread()}
	}
	m.tabs.SetTabs(items, m.router.Focused())
}
