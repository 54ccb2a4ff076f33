// Package logger writes the client's debug log. The terminal is owned by the
// UI, so everything goes to a file instead of stderr.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultLogPath is where the log goes when Init was never called.
const DefaultLogPath = "/tmp/parley-debug.log"

var (
	mu       sync.Mutex
	base     *slog.Logger
	levelVar = new(slog.LevelVar)
	level    = LevelInfo
	out      io.Closer
	path     string
	ready    bool
)

// SetLevel sets the minimum log level to output
func SetLevel(l LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	level = l
	levelVar.Set(l.slogLevel())
}

// SetDebug toggles between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelInfo)
}

// Init opens the log file at p. Calling it again before Reset is a no-op.
func Init(p string) error {
	mu.Lock()
	defer mu.Unlock()

	if ready {
		return nil
	}
	return openLocked(p)
}

func openLocked(p string) error {
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", p, err)
	}
	out = f
	path = p
	levelVar.Set(level.slogLevel())
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	ready = true
	base.Info("logger initialized", "path", p)
	return nil
}

// ensureLocked lazily opens DefaultLogPath. mu must be held.
func ensureLocked() {
	if ready {
		return
	}
	if err := openLocked(DefaultLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		// Don't retry on every call.
		ready = true
	}
}

func logf(l slog.Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	ensureLocked()
	if base == nil || !base.Enabled(context.Background(), l) {
		return
	}
	base.Log(context.Background(), l, fmt.Sprintf(format, args...))
}

// Debug writes a debug message (only if level is LevelDebug)
func Debug(format string, args ...any) { logf(slog.LevelDebug, format, args...) }

// Info writes an info message
func Info(format string, args ...any) { logf(slog.LevelInfo, format, args...) }

// Warn writes a warning message
func Warn(format string, args ...any) { logf(slog.LevelWarn, format, args...) }

// Error writes an error message
func Error(format string, args ...any) { logf(slog.LevelError, format, args...) }

// Log is an alias for Debug.
func Log(format string, args ...any) { logf(slog.LevelDebug, format, args...) }

// Path returns the file currently being written, or "" before first use.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return path
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if out != nil {
		out.Close()
		out = nil
	}
	base = nil
}

// Reset drops all state so the next Init or log call reopens a file.
// Tests use it to redirect output between cases.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if out != nil {
		out.Close()
		out = nil
	}
	ready = false
	path = ""
	base = nil
	level = LevelInfo
	levelVar = new(slog.LevelVar)
}

// ClearLogs removes the default log file. It reports how many files were
// removed.
func ClearLogs() (int, error) {
	if err := os.Remove(DefaultLogPath); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return 1, nil
}

func with(attr slog.Attr) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureLocked()
	if base == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return base.With(attr)
}

// WithComponent returns a structured logger tagged with a component name.
//
//	log := logger.WithComponent("session")
//	log.Info("connected", "server", addr)
func WithComponent(component string) *slog.Logger {
	return with(slog.String("component", component))
}

// WithConversation returns a structured logger tagged with a conversation
// title.
func WithConversation(title string) *slog.Logger {
	return with(slog.String("conversation", title))
}

// Logger returns the underlying slog.Logger, or nil if the file could not
// be opened.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureLocked()
	return base
}
