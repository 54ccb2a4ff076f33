package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/ui"
)

// ShowFlash displays a flash message in the footer and returns a command to
// start the auto-dismiss timer. Multi-line text is folded onto one line.
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	text = strings.Join(strings.Fields(text), " ")
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// ShowFlashError displays an error flash and records it in the log.
func (m *Model) ShowFlashError(text string) tea.Cmd {
	logger.WithComponent("app").Warn("flash error", "text", text)
	return m.ShowFlash(text, ui.FlashError)
}

func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}

func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}
