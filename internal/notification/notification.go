// Package notification raises desktop notifications for chat activity that
// arrives while the terminal is in the background.
package notification

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/gen2brain/beeep"
	"github.com/zhubert/parley/internal/logger"
)

// AppName is used as the title prefix of every notification.
const AppName = "parley"

type notifyFunc func(title, message string, icon any) error

var notifier notifyFunc = beeep.Notify

// SetNotifier replaces the notification backend. Tests use it to capture
// notifications instead of showing them.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send shows a desktop notification. Terminal escape sequences are stripped
// from both title and message first.
func Send(title, message string) error {
	title = ansi.Strip(title)
	message = ansi.Strip(message)
	log := logger.WithComponent("notification")
	log.Debug("sending", "title", title, "message", message)
	// Empty icon lets beeep pick the platform default.
	if err := notifier(title, message, ""); err != nil {
		log.Warn("send failed", "error", err)
		return err
	}
	return nil
}

// Kind mirrors the style a message is displayed with, so notifications can
// be worded to match.
type Kind int

const (
	KindMessage Kind = iota
	KindWhisper
	KindError
	KindSelf
)

// Title composes the notification title for a message from sender.
func Title(kind Kind, sender string) string {
	switch kind {
	case KindWhisper:
		return AppName + ": whisper from " + sender
	case KindError:
		return AppName + ": error"
	case KindSelf:
		return AppName + ": you"
	default:
		if sender == "" {
			return AppName
		}
		return AppName + ": " + sender
	}
}

// Summary shortens body to fit a notification bubble.
func Summary(body string, max int) string {
	body = strings.Join(strings.Fields(ansi.Strip(body)), " ")
	if max <= 0 || len([]rune(body)) <= max {
		return body
	}
	r := []rune(body)
	return string(r[:max-1]) + "…"
}
