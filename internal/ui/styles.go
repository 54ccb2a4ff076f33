package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/router"
)

// Theme colors, set by regenerateStyles.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorMuted       color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorBg          color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color
	ColorInfo        color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
)

// Header and footer styles
var (
	HeaderStyle           lipgloss.Style
	FooterStyle           lipgloss.Style
	FooterKeyStyle        lipgloss.Style
	FooterDescStyle       lipgloss.Style
	FooterFlashStyle      lipgloss.Style
	FooterFlashErrorStyle lipgloss.Style
)

// Panel, tab and chat styles
var (
	PanelStyle            lipgloss.Style
	PanelFocusedStyle     lipgloss.Style
	TabStyle              lipgloss.Style
	TabActiveStyle        lipgloss.Style
	TabUnreadStyle        lipgloss.Style
	ChatSenderStyle       lipgloss.Style
	ChatTimeStyle         lipgloss.Style
	ChatInputStyle        lipgloss.Style
	ChatInputFocusedStyle lipgloss.Style
	NoticeStyle           lipgloss.Style
)

// Modal styles
var (
	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalHelpStyle   lipgloss.Style
	StatusErrorStyle lipgloss.Style
)

// Text selection styles
var (
	TextSelectionStyle      lipgloss.Style
	TextSelectionFlashStyle lipgloss.Style
)

// Message body colors. These come from the user's options rather than
// the theme, so they survive theme switches.
var (
	whisperColor  color.Color = lipgloss.Color(config.DefaultWhisperColor)
	errorColor    color.Color = lipgloss.Color(config.DefaultErrorColor)
	personalColor color.Color = lipgloss.Color(config.DefaultPersonalColor)
)

// SetMessageColors replaces the colors used for whisper, error and
// personal message bodies. Empty values keep the current color.
func SetMessageColors(c config.Colors) {
	if c.Whisper != "" {
		whisperColor = lipgloss.Color(c.Whisper)
	}
	if c.Error != "" {
		errorColor = lipgloss.Color(c.Error)
	}
	if c.Personal != "" {
		personalColor = lipgloss.Color(c.Personal)
	}
}

// MessageStyle returns the body style for a message of the given style.
func MessageStyle(s router.Style) lipgloss.Style {
	base := lipgloss.NewStyle()
	switch s {
	case router.StyleWhisper:
		return base.Foreground(whisperColor).Italic(true)
	case router.StyleError:
		return base.Foreground(errorColor).Bold(true)
	case router.StyleSelf:
		return base.Foreground(personalColor)
	default:
		return base.Foreground(ColorText)
	}
}
