package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
)

// listenForLines waits for the next server line. Only one listener is
// outstanding at a time, and the LineMsg handler starts the next, so lines
// reach the update loop in the order they were received.
func listenForLines(conn Conn) tea.Cmd {
	if conn == nil {
		return nil
	}
	ch := conn.Lines()
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return DisconnectedMsg{Err: conn.Err(), conn: conn}
		}
		return LineMsg{Line: line, conn: conn}
	}
}

// startConfigWatch watches the config file for edits made outside the
// app. Reloads arrive through listenForConfig.
func (m *Model) startConfigWatch() tea.Cmd {
	path := m.config.Path()
	if path == "" {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	changes := m.configChanges
	err := config.Watch(ctx, path, func(cfg *config.Config) {
		// keep only the newest reload if the app falls behind
		select {
		case <-changes:
		default:
		}
		changes <- cfg
	})
	if err != nil {
		cancel()
		logger.WithComponent("app").Warn("config watch unavailable", "path", path, "error", err)
		return nil
	}
	m.stopWatch = cancel
	return listenForConfig(changes)
}

func listenForConfig(ch <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigChangedMsg{Config: cfg}
	}
}
