package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func setupTestLogger(t *testing.T) string {
	t.Helper()
	Reset()
	p := filepath.Join(t.TempDir(), "test-debug.log")
	if err := Init(p); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(Reset)
	return p
}

func readLog(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(b)
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		logFn   func(string, ...any)
		message string
		want    bool
	}{
		{"debug hidden at info", false, Debug, "debug-hidden", false},
		{"debug shown at debug", true, Debug, "debug-shown", true},
		{"log is debug", false, Log, "log-hidden", false},
		{"info shown", false, Info, "info-shown", true},
		{"warn shown", false, Warn, "warn-shown", true},
		{"error shown", false, Error, "error-shown", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := setupTestLogger(t)
			SetDebug(tt.debug)

			tt.logFn("%s", tt.message)

			if got := strings.Contains(readLog(t, p), tt.message); got != tt.want {
				t.Errorf("message present = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatting(t *testing.T) {
	p := setupTestLogger(t)

	Info("user %s joined %d rooms", "alice", 3)

	if !strings.Contains(readLog(t, p), "user alice joined 3 rooms") {
		t.Error("formatted message missing from log")
	}
}

func TestWithComponent(t *testing.T) {
	p := setupTestLogger(t)

	WithComponent("session").Info("dialed", "server", "localhost:8989")
	WithConversation("bob").Warn("created")

	content := readLog(t, p)
	for _, want := range []string{"component=session", "server=localhost:8989", "conversation=bob"} {
		if !strings.Contains(content, want) {
			t.Errorf("log missing %q:\n%s", want, content)
		}
	}
}

func TestConcurrentLogging(t *testing.T) {
	setupTestLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				Info("concurrent %d-%d", n, j)
			}
		}(i)
	}
	wg.Wait()
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	Reset()
	if err := Init(first); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("to first")

	Reset()
	if err := Init(second); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("to second")
	defer Reset()

	if c := readLog(t, first); !strings.Contains(c, "to first") || strings.Contains(c, "to second") {
		t.Errorf("first log has wrong content:\n%s", c)
	}
	if c := readLog(t, second); !strings.Contains(c, "to second") || strings.Contains(c, "to first") {
		t.Errorf("second log has wrong content:\n%s", c)
	}
	if Path() != second {
		t.Errorf("Path() = %q, want %q", Path(), second)
	}
}

func TestInitBadPath(t *testing.T) {
	Reset()
	defer Reset()

	if err := Init(filepath.Join(t.TempDir(), "missing", "dir", "x.log")); err == nil {
		t.Error("expected error for unwritable path")
	}
}
