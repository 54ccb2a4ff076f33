package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/notification"
	"github.com/zhubert/parley/internal/session"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)
	// never show real desktop notifications from tests
	notification.SetNotifier(func(string, string, any) error { return nil })
	code := m.Run()
	notification.ResetNotifier()
	os.Exit(code)
}

// fakeConn is an in-memory Conn. Lines written to its channel are read by
// the app's listener; everything the app sends is recorded.
type fakeConn struct {
	user   string
	server string
	lines  chan string

	mu      sync.Mutex
	sent    []string
	sendErr error
	closed  bool
	once    sync.Once
}

func newFakeConn(user string) *fakeConn {
	return &fakeConn{user: user, server: "chat.example:8989", lines: make(chan string, 16)}
}

func (c *fakeConn) Lines() <-chan string { return c.lines }
func (c *fakeConn) Err() error           { return nil }

func (c *fakeConn) Send(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, text)
	return nil
}

func (c *fakeConn) Close() error {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.lines)
	})
	return nil
}

func (c *fakeConn) Username() string       { return c.user }
func (c *fakeConn) Server() string         { return c.server }
func (c *fakeConn) ConnectedAt() time.Time { return time.Now().Add(-time.Minute) }
func (c *fakeConn) LocalAddr() string      { return "127.0.0.1:50000" }
func (c *fakeConn) RemoteAddr() string     { return "127.0.0.1:8989" }

func (c *fakeConn) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sent...)
}

func (c *fakeConn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// fakeDialer records the options of every dial and answers with conn or err.
type fakeDialer struct {
	mu    sync.Mutex
	calls []session.Options
	conn  Conn
	err   error
}

func (d *fakeDialer) Dial(_ context.Context, opts session.Options) (Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, opts)
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}

func (d *fakeDialer) Calls() []session.Options {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]session.Options(nil), d.calls...)
}

// testConfig creates a config bound to a temp file, with the terms
// already accepted so tests start at the login dialog.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New(filepath.Join(t.TempDir(), "config.json"))
	cfg.SetAgreedToTerms(true)
	return cfg
}

// testModelWithSize creates a test Model and sets its size.
func testModelWithSize(cfg *config.Config, opts Options, width, height int) *Model {
	m := New(cfg, opts)
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

// loggedIn returns a model already connected as user over a fake conn.
func loggedIn(t *testing.T, user string) (*Model, *fakeConn) {
	t.Helper()
	conn := newFakeConn(user)
	m := testModelWithSize(testConfig(t), Options{}, 100, 30)
	m.Update(TaskResultMsg{Name: taskConnect, Value: conn})
	if !m.Connected() {
		t.Fatal("model did not connect")
	}
	return m, conn
}

// deliver feeds raw to the model as if it had been read from conn.
func deliver(m *Model, conn *fakeConn, raw string) tea.Cmd {
	_, cmd := m.Update(LineMsg{Line: raw, conn: conn})
	return cmd
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "esc", "down", "ctrl+c", "alt+right"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "alt+right":
		return tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModAlt}
	case "alt+left":
		return tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModAlt}
	}
	if len(key) > 5 && key[:5] == "ctrl+" {
		return tea.KeyPressMsg{Code: rune(key[5]), Mod: tea.ModCtrl}
	}
	r := []rune(key)[0]
	return tea.KeyPressMsg{Code: r, Text: key}
}

// runCmd executes cmd and every command it batches, returning the
// messages that arrive within a short wait. Timers and listeners that
// block longer are abandoned.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(100 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var (
			mu   sync.Mutex
			msgs []tea.Msg
			wg   sync.WaitGroup
		)
		for _, c := range batch {
			wg.Add(1)
			go func(c tea.Cmd) {
				defer wg.Done()
				got := runCmd(c)
				mu.Lock()
				msgs = append(msgs, got...)
				mu.Unlock()
			}(c)
		}
		wg.Wait()
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// taskResults filters the TaskResultMsgs out of msgs.
func taskResults(msgs []tea.Msg) []TaskResultMsg {
	var out []TaskResultMsg
	for _, msg := range msgs {
		if r, ok := msg.(TaskResultMsg); ok {
			out = append(out, r)
		}
	}
	return out
}

func isQuit(cmd tea.Cmd) bool {
	for _, msg := range runCmd(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

// notifyCapture routes desktop notifications to fn for the rest of the test.
func notifyCapture(t *testing.T, fn func(title string)) {
	t.Helper()
	notification.SetNotifier(func(title, _ string, _ any) error {
		fn(title)
		return nil
	})
	t.Cleanup(func() {
		notification.SetNotifier(func(string, string, any) error { return nil })
	})
}
