// Package clipboard reads and writes text on the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/parley/internal/logger"
)

type backend struct {
	init  func() error
	read  func() []byte
	write func([]byte)
}

var (
	mu          sync.Mutex
	initialized bool
	impl        = systemBackend()
)

func systemBackend() backend {
	return backend{
		init:  clipboard.Init,
		read:  func() []byte { return clipboard.Read(clipboard.FmtText) },
		write: func(b []byte) { clipboard.Write(clipboard.FmtText, b) },
	}
}

// Init initializes the clipboard. It is safe to call multiple times and is
// called lazily by ReadText and WriteText.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}
	if err := impl.init(); err != nil {
		logger.Warn("Clipboard: failed to initialize: %v", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	initialized = true
	return nil
}

// ReadText returns the clipboard's text content, or "" if it holds none.
func ReadText() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return "", err
	}
	return string(impl.read()), nil
}

// WriteText replaces the clipboard's content with text.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return err
	}
	impl.write([]byte(text))
	logger.Debug("Clipboard: wrote %d bytes of text", len(text))
	return nil
}

// SetBackend swaps the clipboard for an in-memory one. It returns a
// function restoring the system clipboard. Tests use it so they never
// touch the real clipboard.
func SetBackend(read func() []byte, write func([]byte)) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev, prevInit := impl, initialized
	impl = backend{init: func() error { return nil }, read: read, write: write}
	initialized = false
	return func() {
		mu.Lock()
		defer mu.Unlock()
		impl, initialized = prev, prevInit
	}
}
