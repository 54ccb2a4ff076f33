package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/zhubert/parley/internal/logger"
)

// Task names
const (
	taskConnect        = "connect"
	taskSend           = "send"
	taskLeaderboard    = "leaderboard"
	taskChangePassword = "change-password"
	taskDeleteAccount  = "delete-account"
)

// TaskResultMsg reports a finished background task. Value carries the
// task's product, if it has one.
type TaskResultMsg struct {
	ID    string
	Name  string
	Err   error
	Value any
}

// runTask runs fn off the update loop with a deadline and reports back
// through TaskResultMsg.
func runTask(name string, timeout time.Duration, fn func(ctx context.Context) (any, error)) tea.Cmd {
	id := uuid.NewString()
	log := logger.WithComponent("task").With("task", name, "id", id)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		v, err := fn(ctx)
		if err != nil {
			log.Warn("task failed", "error", err, "elapsed", time.Since(start))
		} else {
			log.Debug("task done", "elapsed", time.Since(start))
		}
		return TaskResultMsg{ID: id, Name: name, Err: err, Value: v}
	}
}

// sendTask writes text to the current connection.
func (m *Model) sendTask(name, text string) tea.Cmd {
	conn := m.conn
	if conn == nil {
		return nil
	}
	return runTask(name, sendTimeout, func(ctx context.Context) (any, error) {
		return nil, conn.Send(ctx, text)
	})
}
